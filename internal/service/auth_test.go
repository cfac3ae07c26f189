package service

import (
	"testing"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "orange-bicycle-river-42"

func newAuthEnv(t *testing.T) (*verificationEnv, *AuthService) {
	t.Helper()

	env := newVerificationEnv(t)
	auth := NewAuthService(env.users, env.svc, "jwt-test-secret", 7*24*time.Hour, false)
	return env, auth
}

func signupInput(email string) SignupInput {
	return SignupInput{
		Country:       "Pakistan",
		Role:          model.RoleVendor,
		Email:         email,
		Password:      testPassword,
		PasswordAgain: testPassword,
		CompanyName:   "Test Trading Co",
		FullName:      "Alice Trader",
		MobileNumber:  "+92 300 0000000",
	}
}

func TestSignupHappyPath(t *testing.T) {
	env, auth := newAuthEnv(t)

	user, outcome, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, SignupEmailSent, outcome)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleVendor, user.Role)
	assert.False(t, user.EmailVerified)

	// A verification email went out carrying the persisted token.
	require.Len(t, env.sender.sent, 1)
	assert.Equal(t, env.storedToken(t, "alice@example.com"), env.sender.sent[0].Token)

	// Password is stored hashed, never verbatim.
	stored, err := env.users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestSignupInputValidation(t *testing.T) {
	_, auth := newAuthEnv(t)

	in := signupInput("not-an-email")
	_, _, err := auth.Signup(in)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	in = signupInput("alice@example.com")
	in.PasswordAgain = "different-password-123"
	_, _, err = auth.Signup(in)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	in = signupInput("alice@example.com")
	in.Password = "short"
	in.PasswordAgain = "short"
	_, _, err = auth.Signup(in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = signupInput("alice@example.com")
	in.Role = "admin"
	_, _, err = auth.Signup(in)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignupDefaultsToMemberRole(t *testing.T) {
	_, auth := newAuthEnv(t)

	in := signupInput("bob@example.com")
	in.Role = ""
	user, _, err := auth.Signup(in)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, user.Role)
}

func TestSignupRejectsVerifiedDuplicate(t *testing.T) {
	env, auth := newAuthEnv(t)

	_, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	_, err = env.svc.CompleteVerification("alice@example.com")
	require.NoError(t, err)

	_, _, err = auth.Signup(signupInput("alice@example.com"))
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignupSupersedesUnverifiedDuplicate(t *testing.T) {
	env, auth := newAuthEnv(t)

	first, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)

	// Abandoned signup; the user registers again.
	second, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := env.users.ByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
	assert.False(t, stored.EmailVerified)
}

func TestSignupEmailUndelivered(t *testing.T) {
	env, auth := newAuthEnv(t)
	env.sender.fail = true

	_, outcome, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, SignupEmailUndelivered, outcome)

	// The account and its token exist, so manual verification still works.
	manual, err := env.svc.ManualVerify("alice@example.com", env.storedToken(t, "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, ManualSuccess, manual)
}

func TestLoginGatedOnVerification(t *testing.T) {
	env, auth := newAuthEnv(t)

	_, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)

	_, err = auth.Login("alice@example.com", testPassword)
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = env.svc.CompleteVerification("alice@example.com")
	require.NoError(t, err)

	user, err := auth.Login("alice@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env, auth := newAuthEnv(t)

	_, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	_, err = env.svc.CompleteVerification("alice@example.com")
	require.NoError(t, err)

	_, err = auth.Login("alice@example.com", "wrong-password-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("ghost@example.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTRoundTrip(t *testing.T) {
	_, auth := newAuthEnv(t)

	user := &model.User{ID: "u1", Email: "alice@example.com", Role: model.RoleVendor}
	tok, err := auth.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := auth.VerifyJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, model.RoleVendor, claims["role"])

	_, err = auth.VerifyJWT(tok + "tampered")
	assert.Error(t, err)
}

func TestExpiredPendingAccountIsInertUntilResend(t *testing.T) {
	env, auth := newAuthEnv(t)

	_, _, err := auth.Signup(signupInput("alice@example.com"))
	require.NoError(t, err)
	oldToken := env.storedToken(t, "alice@example.com")

	env.clock.Advance(25 * time.Hour)

	// The stale pending account refuses login and its token is dead.
	_, err = auth.Login("alice@example.com", testPassword)
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	manual, err := env.svc.ManualVerify("alice@example.com", oldToken)
	require.NoError(t, err)
	assert.Equal(t, ManualExpired, manual)

	// A resend revives the flow.
	outcome, err := env.svc.Resend("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, ResendSent, outcome)

	manual, err = env.svc.ManualVerify("alice@example.com", env.storedToken(t, "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, ManualSuccess, manual)

	_, err = auth.Login("alice@example.com", testPassword)
	require.NoError(t, err)
}
