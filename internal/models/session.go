package models

import "time"

// Session binds an opaque bearer token to an account with an absolute
// expiry. Expired rows are purged lazily on first access; there is no
// background sweep.
type Session struct {
	Token     string    `db:"token" json:"-"`
	AccountID string    `db:"account_id" json:"account_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
