package model

import "time"

// CompanyProfile is a vendor's own page: a markdown product description
// plus uploaded images (logo, product shots) tracked in the files table.
type CompanyProfile struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Description string    `db:"description"`
	UpdatedAt   time.Time `db:"updated_at"`
}
