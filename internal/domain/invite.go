package domain

import "time"

// Invite is a single-use registration grant keyed by email. At most one invite
// exists per email; re-inviting the same address overwrites the token, expiry
// and acceptance marker.
type Invite struct {
	ID         string
	Email      string
	Role       Role
	Token      string
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

// Redeemable reports whether the invite can still be accepted at the given time.
func (i *Invite) Redeemable(now time.Time) bool {
	return i.AcceptedAt == nil && i.ExpiresAt.After(now)
}
