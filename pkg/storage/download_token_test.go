package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Minute)

	token, expiresAt, err := signer.Generate("math/lesson1.pdf")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	path, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "math/lesson1.pdf", path)
}

func TestDownloadTokenExpired(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Minute)
	signer.ttl = -time.Minute

	token, _, err := signer.Generate("math/lesson1.pdf")
	require.NoError(t, err)

	_, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestDownloadTokenNonPositiveTTLFallsBack(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", -time.Minute)

	_, expiresAt, err := signer.Generate("math/lesson1.pdf")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
}

func TestDownloadTokenWrongSecret(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Minute)
	other := NewDownloadTokenSigner("other", time.Minute)

	token, _, err := signer.Generate("math/lesson1.pdf")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestDownloadTokenEmptyPath(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Minute)

	_, _, err := signer.Generate("")
	assert.Error(t, err)
}
