package repository

import (
	"database/sql"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CompanyProfileRepository interface {
	ByUserID(userID string) (*model.CompanyProfile, error)
	// Upsert creates the vendor's profile on first save and updates it
	// afterwards (one profile per user).
	Upsert(profile *model.CompanyProfile) error
}

type companyProfileRepository struct {
	db *sqlx.DB
}

func NewCompanyProfileRepository(db *sqlx.DB) CompanyProfileRepository {
	return &companyProfileRepository{db: db}
}

func (r *companyProfileRepository) ByUserID(userID string) (*model.CompanyProfile, error) {
	profile := &model.CompanyProfile{}
	query := `SELECT * FROM company_profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

func (r *companyProfileRepository) Upsert(profile *model.CompanyProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.UpdatedAt = time.Now()

	query := `
		INSERT INTO company_profiles (id, user_id, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET description = $3, updated_at = $4
	`

	_, err := r.db.Exec(query, profile.ID, profile.UserID, profile.Description, profile.UpdatedAt)
	return err
}
