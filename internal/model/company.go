package model

import "time"

// Company is a directory entry for a partner company.
type Company struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	Mobile    string    `db:"mobile"`
	Email     string    `db:"email"`
	Services  string    `db:"services"` // comma separated
	CreatedAt time.Time `db:"created_at"`
}
