package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/africahouse/tradeportal/internal/db"
	"github.com/africahouse/tradeportal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (UserRepository, VerificationRepository) {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return NewUserRepository(database), NewVerificationRepository(database)
}

func createTestUser(t *testing.T, users UserRepository, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Role:         model.RoleMember,
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Test User",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestIssueTokenWritesUserRowAndLog(t *testing.T) {
	users, verifications := newTestDB(t)
	user := createTestUser(t, users, "alice@example.com")

	sent := time.Now()
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok-1", sent, sent.Add(24*time.Hour)))

	stored, err := users.ByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)
	assert.Equal(t, "tok-1", *stored.VerificationToken)
	require.NotNil(t, stored.VerificationTokenExpires)

	attempt, err := verifications.LatestAttempt("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", attempt.Token)
	assert.Equal(t, model.AttemptStatusPending, attempt.Status)
	assert.Nil(t, attempt.VerifiedAt)
	assert.WithinDuration(t, sent, attempt.SentAt, time.Second)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	_, verifications := newTestDB(t)

	err := verifications.IssueToken("no-such-id", "ghost@example.com", "tok", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueTokenOverwritesPrevious(t *testing.T) {
	users, verifications := newTestDB(t)
	user := createTestUser(t, users, "alice@example.com")

	sent := time.Now()
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok-1", sent, sent.Add(time.Hour)))
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok-2", sent.Add(time.Minute), sent.Add(time.Hour)))

	stored, err := users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", *stored.VerificationToken)

	// Both issuances remain in the audit trail.
	attempts, err := verifications.AttemptsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestMarkVerifiedClosesLatestPendingOnly(t *testing.T) {
	users, verifications := newTestDB(t)
	user := createTestUser(t, users, "alice@example.com")

	// Explicit sent timestamps pin the ordering MarkVerified relies on.
	sent := time.Now()
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok-1", sent, sent.Add(time.Hour)))
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok-2", sent.Add(time.Minute), sent.Add(time.Hour)))

	require.NoError(t, verifications.MarkVerified("alice@example.com", time.Now()))

	stored, err := users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)
	assert.Nil(t, stored.VerificationToken)
	assert.Nil(t, stored.VerificationTokenExpires)

	attempts, err := verifications.AttemptsByEmail("alice@example.com")
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	var verified, pending int
	for _, a := range attempts {
		switch a.Status {
		case model.AttemptStatusVerified:
			verified++
			assert.Equal(t, "tok-2", a.Token)
		case model.AttemptStatusPending:
			pending++
		}
	}
	assert.Equal(t, 1, verified)
	assert.Equal(t, 1, pending)
}

func TestMarkVerifiedUnknownEmail(t *testing.T) {
	_, verifications := newTestDB(t)

	err := verifications.MarkVerified("ghost@example.com", time.Now())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
