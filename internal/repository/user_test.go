package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndLookupUser(t *testing.T) {
	users, _ := newTestDB(t)

	created := createTestUser(t, users, "alice@example.com")

	byEmail, err := users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := users.ByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = users.ByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = users.ByID("no-such-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	users, _ := newTestDB(t)

	first := createTestUser(t, users, "alice@example.com")

	dup := *first
	dup.ID = "another-id"
	err := users.Create(&dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDeleteUnverifiedSparesVerifiedRows(t *testing.T) {
	users, verifications := newTestDB(t)

	user := createTestUser(t, users, "alice@example.com")

	// Unverified rows are removable.
	require.NoError(t, users.DeleteUnverified("alice@example.com"))
	_, err := users.ByEmail("alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Verified rows survive the same call.
	user = createTestUser(t, users, "bob@example.com")
	require.NoError(t, verifications.IssueToken(user.ID, user.Email, "tok", user.CreatedAt, user.CreatedAt.Add(time.Hour)))
	require.NoError(t, verifications.MarkVerified("bob@example.com", user.CreatedAt))

	require.NoError(t, users.DeleteUnverified("bob@example.com"))
	kept, err := users.ByEmail("bob@example.com")
	require.NoError(t, err)
	assert.True(t, kept.EmailVerified)
}
