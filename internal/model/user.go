package model

import (
	"time"
)

const (
	RoleVendor = "vendor"
	RoleMember = "member"
)

type User struct {
	ID            string     `db:"id"`
	Country       string     `db:"country"`
	Role          string     `db:"role"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	CompanyName   string     `db:"company_name"`
	FullName      string     `db:"full_name"`
	MobileNumber  string     `db:"mobile_number"`
	EmailVerified bool       `db:"email_verified"`
	// Most recently issued verification token and its expiry. Cleared when
	// the account becomes verified; matched directly by the manual path.
	VerificationToken        *string    `db:"verification_token"`
	VerificationTokenExpires *time.Time `db:"verification_token_expires"`
	CreatedAt                time.Time  `db:"created_at"`
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// TokenExpired reports whether the stored verification token has lapsed.
// A user without a stored token counts as expired.
func (u *User) TokenExpired(now time.Time) bool {
	if u.VerificationToken == nil || u.VerificationTokenExpires == nil {
		return true
	}
	return now.After(*u.VerificationTokenExpires)
}
