package storage

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

// DownloadTokenSigner mints and validates short-lived signed tokens that
// embed a blob path. Download links carry the token instead of a raw
// caller-supplied path, so the public download endpoint never trusts
// client input for path construction.
type DownloadTokenSigner struct {
	secret []byte
	ttl    time.Duration
}

type downloadClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// NewDownloadTokenSigner constructs a signer with the provided secret and TTL.
func NewDownloadTokenSigner(secret string, ttl time.Duration) *DownloadTokenSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DownloadTokenSigner{secret: []byte(secret), ttl: ttl}
}

// Generate returns a signed token referencing the relative blob path.
func (s *DownloadTokenSigner) Generate(relPath string) (string, time.Time, error) {
	if relPath == "" {
		return "", time.Time{}, fmt.Errorf("relPath required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}

	expiresAt := time.Now().Add(s.ttl)
	claims := downloadClaims{
		Path: relPath,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns the embedded relative path.
func (s *DownloadTokenSigner) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &downloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, "invalid download token")
	}

	claims, ok := token.Claims.(*downloadClaims)
	if !ok || !token.Valid || claims.Path == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthenticated, "invalid download token")
	}
	return claims.Path, nil
}
