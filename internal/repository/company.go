package repository

import (
	"database/sql"
	"strings"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/jmoiron/sqlx"
)

type CompanyRepository interface {
	Create(company *model.Company) error
	All() ([]model.Company, error)
	ByID(id string) (*model.Company, error)
	// Search matches a keyword case-insensitively against name, services
	// and address.
	Search(keyword string) ([]model.Company, error)
}

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	query := `
		INSERT INTO companies (id, name, address, phone, mobile, email, services, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		company.ID,
		company.Name,
		company.Address,
		company.Phone,
		company.Mobile,
		company.Email,
		company.Services,
		company.CreatedAt,
	)
	return err
}

func (r *companyRepository) All() ([]model.Company, error) {
	companies := []model.Company{}
	query := `SELECT * FROM companies ORDER BY name ASC`

	err := r.db.Select(&companies, query)
	return companies, err
}

func (r *companyRepository) ByID(id string) (*model.Company, error) {
	company := &model.Company{}
	query := `SELECT * FROM companies WHERE id = $1`

	err := r.db.Get(company, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}

	return company, err
}

func (r *companyRepository) Search(keyword string) ([]model.Company, error) {
	companies := []model.Company{}
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"

	query := `
		SELECT * FROM companies
		WHERE lower(name) LIKE $1 OR lower(services) LIKE $1 OR lower(address) LIKE $1
		ORDER BY name ASC
	`

	err := r.db.Select(&companies, query, pattern)
	return companies, err
}
