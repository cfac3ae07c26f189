package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/token"
)

// EmailSender is the delivery channel consumed by the verification flow.
// Sends may fail transiently; callers treat that as a soft outcome.
type EmailSender interface {
	SendVerificationEmail(email, name, verificationToken string) error
	SendWelcomeEmail(email, name string) error
}

type VerifyOutcome string

const (
	VerifySuccess         VerifyOutcome = "success"
	VerifyNotFound        VerifyOutcome = "not_found"
	VerifyAlreadyVerified VerifyOutcome = "already_verified"
)

type ResendOutcome string

const (
	ResendSent            ResendOutcome = "sent"
	ResendUndelivered     ResendOutcome = "sent_but_undelivered"
	ResendAlreadyVerified ResendOutcome = "already_verified"
	ResendNotFound        ResendOutcome = "not_found"
)

type ManualOutcome string

const (
	ManualSuccess ManualOutcome = "success"
	ManualInvalid ManualOutcome = "invalid"
	ManualExpired ManualOutcome = "expired"
)

// VerificationService drives the email-verification lifecycle: token
// issuance, link validation, the verified-state transition, resends and the
// manual out-of-band fallback for when outbound email is unreliable.
type VerificationService struct {
	userRepository         repository.UserRepository
	verificationRepository repository.VerificationRepository
	emailSender            EmailSender
	signer                 *token.Signer
	tokenExpiry            time.Duration
	now                    func() time.Time
}

func NewVerificationService(
	userRepository repository.UserRepository,
	verificationRepository repository.VerificationRepository,
	emailSender EmailSender,
	signer *token.Signer,
	tokenExpiry time.Duration,
) *VerificationService {
	return &VerificationService{
		userRepository:         userRepository,
		verificationRepository: verificationRepository,
		emailSender:            emailSender,
		signer:                 signer,
		tokenExpiry:            tokenExpiry,
		now:                    time.Now,
	}
}

// IssueAndPersist mints a signed verification token for email, stores it on
// the user row with a fresh expiry and appends a pending attempt-log entry.
// Any previously stored token is superseded by the overwrite.
func (s *VerificationService) IssueAndPersist(email string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", repository.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	verificationToken, err := s.signer.Issue(email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now()
	err = s.verificationRepository.IssueToken(user.ID, email, verificationToken, now, now.Add(s.tokenExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return verificationToken, nil
}

// SendVerification delivers the verification email. A failure here is
// recoverable: the persisted token keeps the manual path open.
func (s *VerificationService) SendVerification(email, name, verificationToken string) error {
	return s.emailSender.SendVerificationEmail(email, name, verificationToken)
}

// ValidateLinkToken checks a clicked-link token: signature, purpose and age,
// then equality with the user's currently stored token so a resend
// supersedes older links. Returns the bound email on success; fails closed
// with token.ErrInvalid or token.ErrExpired otherwise. An already-verified
// account passes so CompleteVerification can report it idempotently.
func (s *VerificationService) ValidateLinkToken(tokenString string) (string, error) {
	email, err := s.signer.Validate(tokenString, s.tokenExpiry)
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", token.ErrInvalid
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user.EmailVerified {
		return email, nil
	}

	if user.VerificationToken == nil || *user.VerificationToken != tokenString {
		return "", token.ErrInvalid
	}

	return email, nil
}

// CompleteVerification flips the account to verified, clears the stored
// token and expiry, and closes the latest pending attempt-log row.
// Idempotent under retries: a second call reports already_verified and
// changes nothing.
func (s *VerificationService) CompleteVerification(email string) (VerifyOutcome, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return VerifyNotFound, nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user.EmailVerified {
		return VerifyAlreadyVerified, nil
	}

	err = s.verificationRepository.MarkVerified(email, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to mark verified: %w", err)
	}

	slog.Info("email verified", "email", email, "user_id", user.ID)
	s.sendWelcome(email, user.FullName)
	return VerifySuccess, nil
}

// sendWelcome is best-effort: the account is already verified, so a
// delivery failure only gets logged.
func (s *VerificationService) sendWelcome(email, name string) {
	if err := s.emailSender.SendWelcomeEmail(email, name); err != nil {
		slog.Warn("welcome email undelivered", "error", err, "email", email)
	}
}

// Resend issues a fresh token (superseding the old one), persists it, and
// attempts delivery. Delivery failure is reported as sent_but_undelivered
// rather than an error: the new token is already stored, so the manual
// fallback stays available.
func (s *VerificationService) Resend(email string) (ResendOutcome, error) {
	email = normalizeEmail(email)

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ResendNotFound, nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if user.EmailVerified {
		return ResendAlreadyVerified, nil
	}

	verificationToken, err := s.signer.Issue(email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now()
	err = s.verificationRepository.IssueToken(user.ID, email, verificationToken, now, now.Add(s.tokenExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	err = s.emailSender.SendVerificationEmail(email, user.FullName, verificationToken)
	if err != nil {
		slog.Warn("verification email undelivered, manual path remains available",
			"error", err, "email", email)
		return ResendUndelivered, nil
	}

	slog.Info("verification email resent", "email", email)
	return ResendSent, nil
}

// ManualVerify is the out-of-band fallback: it trusts direct possession of
// the token string (relayed by a support agent) instead of the signature.
// The supplied token must exactly match the stored one and the stored
// expiry must not have passed.
func (s *VerificationService) ManualVerify(email, suppliedToken string) (ManualOutcome, error) {
	email = normalizeEmail(email)
	suppliedToken = strings.TrimSpace(suppliedToken)

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ManualInvalid, nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	// A verified account has no stored token, so replays fall out here too.
	if user.VerificationToken == nil || suppliedToken == "" || *user.VerificationToken != suppliedToken {
		return ManualInvalid, nil
	}

	if user.TokenExpired(s.now()) {
		return ManualExpired, nil
	}

	err = s.verificationRepository.MarkVerified(email, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to mark verified: %w", err)
	}

	slog.Info("email verified via manual fallback", "email", email, "user_id", user.ID)
	s.sendWelcome(email, user.FullName)
	return ManualSuccess, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
