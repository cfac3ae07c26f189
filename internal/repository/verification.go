package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// VerificationRepository owns the verification state split across the user
// row (current token + expiry + verified flag) and the append-only
// email_verification_logs audit trail. The two-table writes run inside one
// transaction so a failed log append never strands the user without a
// retryable path.
type VerificationRepository interface {
	// IssueToken stores a freshly issued token on the user row and appends
	// a pending attempt-log entry stamped sentAt. The caller supplies both
	// timestamps so the audit trail follows its clock.
	IssueToken(userID, email, token string, sentAt, expiresAt time.Time) error
	// MarkVerified flips the user to verified, clears the stored token and
	// expiry, and closes the most recent pending attempt-log row.
	MarkVerified(email string, at time.Time) error
	LatestAttempt(email string) (*model.VerificationAttempt, error)
	AttemptsByEmail(email string) ([]model.VerificationAttempt, error)
}

type verificationRepository struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) IssueToken(userID, email, token string, sentAt, expiresAt time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE users
		SET verification_token = $1, verification_token_expires = $2
		WHERE id = $3
	`, token, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	_, err = tx.Exec(`
		INSERT INTO email_verification_logs (id, user_id, email, verification_token, sent_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New().String(), userID, email, token, sentAt, model.AttemptStatusPending)
	if err != nil {
		return fmt.Errorf("failed to append verification attempt: %w", err)
	}

	return tx.Commit()
}

func (r *verificationRepository) MarkVerified(email string, at time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE users
		SET email_verified = TRUE, verification_token = NULL, verification_token_expires = NULL
		WHERE email = $1
	`, email)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	// Close only the most recent pending attempt; older pending rows from
	// superseded tokens stay pending in the audit trail.
	_, err = tx.Exec(`
		UPDATE email_verification_logs
		SET verified_at = $1, status = $2
		WHERE id = (
			SELECT id FROM email_verification_logs
			WHERE email = $3 AND status = $4
			ORDER BY sent_at DESC
			LIMIT 1
		)
	`, at, model.AttemptStatusVerified, email, model.AttemptStatusPending)
	if err != nil {
		return fmt.Errorf("failed to close verification attempt: %w", err)
	}

	return tx.Commit()
}

func (r *verificationRepository) LatestAttempt(email string) (*model.VerificationAttempt, error) {
	attempt := &model.VerificationAttempt{}
	query := `
		SELECT * FROM email_verification_logs
		WHERE email = $1
		ORDER BY sent_at DESC
		LIMIT 1
	`

	err := r.db.Get(attempt, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return attempt, err
}

func (r *verificationRepository) AttemptsByEmail(email string) ([]model.VerificationAttempt, error) {
	attempts := []model.VerificationAttempt{}
	query := `SELECT * FROM email_verification_logs WHERE email = $1 ORDER BY sent_at ASC`

	err := r.db.Select(&attempts, query, email)
	return attempts, err
}
