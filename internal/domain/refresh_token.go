package domain

import "time"

// RefreshToken is a long-lived opaque session credential. Each successful
// refresh deletes the presented row and issues a replacement, so a token
// string is valid for exactly one rotation.
type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
