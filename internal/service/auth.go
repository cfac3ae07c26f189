package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
)

type SignupInput struct {
	Country       string
	Role          string
	Email         string
	Password      string
	PasswordAgain string
	CompanyName   string
	FullName      string
	MobileNumber  string
}

type SignupOutcome string

const (
	SignupEmailSent        SignupOutcome = "sent"
	SignupEmailUndelivered SignupOutcome = "sent_but_undelivered"
)

type AuthService struct {
	userRepository      repository.UserRepository
	verificationService *VerificationService
	jwtSecret           string
	jwtExpiry           time.Duration
	isProduction        bool
}

func NewAuthService(
	userRepository repository.UserRepository,
	verificationService *VerificationService,
	jwtSecret string,
	jwtExpiry time.Duration,
	isProduction bool,
) *AuthService {
	return &AuthService{
		userRepository:      userRepository,
		verificationService: verificationService,
		jwtSecret:           jwtSecret,
		jwtExpiry:           jwtExpiry,
		isProduction:        isProduction,
	}
}

// Signup creates an unverified account and starts the verification flow. A
// stale unverified row for the same email is superseded; a verified row is
// a hard conflict. The returned outcome distinguishes whether the
// verification email actually went out.
func (s *AuthService) Signup(in SignupInput) (*model.User, SignupOutcome, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, "", ErrInvalidEmail
	}

	if in.Password != in.PasswordAgain {
		return nil, "", ErrPasswordMismatch
	}

	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	err = validation.ValidateName(in.FullName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	if role != model.RoleVendor && role != model.RoleMember {
		return nil, "", ErrInvalidRole
	}

	existing, err := s.userRepository.ByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		if existing.EmailVerified {
			return nil, "", ErrEmailAlreadyExists
		}
		// Unverified leftover from an abandoned signup: supersede it.
		err = s.userRepository.DeleteUnverified(email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to supersede unverified account: %w", err)
		}
		slog.Info("superseded unverified signup", "email", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Country:      strings.TrimSpace(in.Country),
		Role:         role,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		FullName:     strings.TrimSpace(in.FullName),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		CreatedAt:    time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost a concurrent signup race for the same email.
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	verificationToken, err := s.verificationService.IssueAndPersist(email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start verification: %w", err)
	}

	outcome := SignupEmailSent
	err = s.verificationService.SendVerification(email, user.FullName, verificationToken)
	if err != nil {
		slog.Warn("signup verification email undelivered", "error", err, "email", email)
		outcome = SignupEmailUndelivered
	}

	slog.Info("user signed up", "email", email, "user_id", user.ID, "role", role)
	return user, outcome, nil
}

// Login checks credentials and the verification gate. An unverified match
// returns ErrEmailNotVerified so the caller can steer the user into the
// resend/manual-verify flow instead of granting a session.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
