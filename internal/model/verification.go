package model

import (
	"time"
)

const (
	AttemptStatusPending  = "pending"
	AttemptStatusVerified = "verified"
)

// VerificationAttempt is one row of the append-only audit trail: one per
// token issuance (signup or resend), flipped to verified on consumption.
type VerificationAttempt struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	Email      string     `db:"email"`
	Token      string     `db:"verification_token"`
	SentAt     time.Time  `db:"sent_at"`
	VerifiedAt *time.Time `db:"verified_at"`
	Status     string     `db:"status"`
}
