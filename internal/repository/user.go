package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrProfileNotFound = errors.New("company profile not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrFileNotFound    = errors.New("file not found")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	// DeleteUnverified removes a stale unverified row for email so a
	// re-signup can supersede it. Verified rows are never touched.
	DeleteUnverified(email string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `
		INSERT INTO users (id, country, role, email, password_hash, company_name, full_name, mobile_number,
		                   email_verified, verification_token, verification_token_expires, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(query,
		user.ID,
		user.Country,
		user.Role,
		user.Email,
		user.PasswordHash,
		user.CompanyName,
		user.FullName,
		user.MobileNumber,
		user.EmailVerified,
		user.VerificationToken,
		user.VerificationTokenExpires,
		user.CreatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) DeleteUnverified(email string) error {
	query := `DELETE FROM users WHERE email = $1 AND email_verified = FALSE`

	_, err := r.db.Exec(query, email)
	return err
}
