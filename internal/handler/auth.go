package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/africahouse/tradeportal/internal/ctxkeys"
	"github.com/africahouse/tradeportal/internal/service"
	"github.com/africahouse/tradeportal/internal/token"
)

type authHandler struct {
	authService         *service.AuthService
	verificationService *service.VerificationService
	jwtExpiry           time.Duration
	supportEmail        string
}

func NewAuthHandler(authService *service.AuthService, verificationService *service.VerificationService, jwtExpiry time.Duration, supportEmail string) *authHandler {
	return &authHandler{
		authService:         authService,
		verificationService: verificationService,
		jwtExpiry:           jwtExpiry,
		supportEmail:        supportEmail,
	}
}

type signupRequest struct {
	Country       string `json:"country"`
	Role          string `json:"role"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	PasswordAgain string `json:"passwordAgain"`
	CompanyName   string `json:"companyName"`
	FullName      string `json:"fullName"`
	MobileNumber  string `json:"mobileNumber"`
}

// Signup creates an unverified account and kicks off email verification.
// The response tells the client whether the verification email actually
// went out, so it can steer undelivered signups to the manual path.
func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, outcome, err := h.authService.Signup(service.SignupInput{
		Country:       req.Country,
		Role:          req.Role,
		Email:         req.Email,
		Password:      req.Password,
		PasswordAgain: req.PasswordAgain,
		CompanyName:   req.CompanyName,
		FullName:      req.FullName,
		MobileNumber:  req.MobileNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "An account with this email already exists.")
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("signup failed", "error", err)
			respondError(w, http.StatusInternalServerError, "An error occurred during registration. Please try again.")
		}
		return
	}

	message := "Account created. Please check your email to verify your account."
	if outcome == service.SignupEmailUndelivered {
		message = "Account created, but the verification email could not be delivered. Use manual verification or request a resend."
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"status":  string(outcome),
		"message": message,
		"email":   user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and sets the session cookie. Unverified accounts
// are refused with a distinct status so the client can offer resend or
// manual verification instead of a generic failure.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please enter both email and password.")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotVerified):
			respondJSON(w, http.StatusForbidden, map[string]string{
				"status":  "email_not_verified",
				"message": "Please verify your email before logging in.",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		default:
			slog.Error("login failed", "error", err)
			respondError(w, http.StatusInternalServerError, "An error occurred during login. Please try again.")
		}
		return
	}

	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		respondError(w, http.StatusInternalServerError, "An error occurred during login. Please try again.")
		return
	}

	h.authService.SetJWTCookie(w, jwtToken, time.Now().Add(h.jwtExpiry))

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.FullName,
			"role":  user.Role,
		},
	})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "You have been logged out successfully.",
	})
}

// Me returns the authenticated user attached by the auth middleware
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.FullName,
		"role":          user.Role,
		"companyName":   user.CompanyName,
		"country":       user.Country,
		"emailVerified": user.EmailVerified,
	})
}

// VerifyEmail handles the clicked-link path. The token in the URL is
// signature-checked and bound to an email; verification itself is
// idempotent, so clicking a link twice reports already_verified.
func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	linkToken := r.PathValue("token")

	email, err := h.verificationService.ValidateLinkToken(linkToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"status":  "expired",
				"message": "This verification link has expired. Please request a new one or register again.",
			})
		case errors.Is(err, token.ErrInvalid):
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"status":  "invalid",
				"message": "This verification link is invalid. Please request a new one.",
			})
		default:
			slog.Error("link verification failed", "error", err)
			respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		}
		return
	}

	outcome, err := h.verificationService.CompleteVerification(email)
	if err != nil {
		slog.Error("verification completion failed", "error", err, "email", email)
		respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	switch outcome {
	case service.VerifySuccess:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "Your email has been verified. You can now log in.",
		})
	case service.VerifyAlreadyVerified:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "already_verified",
			"message": "Email is already verified! You can log in.",
		})
	case service.VerifyNotFound:
		respondJSON(w, http.StatusNotFound, map[string]string{
			"status":  "not_found",
			"message": "No account found for this verification link. Please register again.",
		})
	}
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendVerification issues a fresh token and tries to deliver it. A
// delivery failure is a soft outcome: the token is persisted, so the
// client is pointed at the manual path rather than told to retry blindly.
func (h *authHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Please provide an email address.")
		return
	}

	outcome, err := h.verificationService.Resend(req.Email)
	if err != nil {
		slog.Error("resend failed", "error", err, "email", req.Email)
		respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	switch outcome {
	case service.ResendSent:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "sent",
			"message": "Verification email sent successfully!",
		})
	case service.ResendUndelivered:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "sent_but_undelivered",
			"message": "A new verification token was issued, but the email could not be delivered. Use manual verification or try again.",
		})
	case service.ResendAlreadyVerified:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "already_verified",
			"message": "Email is already verified! You can log in.",
		})
	case service.ResendNotFound:
		respondJSON(w, http.StatusNotFound, map[string]string{
			"status":  "not_found",
			"message": "No account found with this email address.",
		})
	}
}

type manualVerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// ManualVerification verifies by exact token match against the stored
// value, bypassing email delivery entirely. Kept available regardless of
// delivery-channel health.
func (h *authHandler) ManualVerification(w http.ResponseWriter, r *http.Request) {
	var req manualVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Token == "" {
		respondError(w, http.StatusBadRequest, "Please provide both email and verification token.")
		return
	}

	outcome, err := h.verificationService.ManualVerify(req.Email, req.Token)
	if err != nil {
		slog.Error("manual verification failed", "error", err, "email", req.Email)
		respondError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	switch outcome {
	case service.ManualSuccess:
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "Your email has been verified. You can now log in.",
		})
	case service.ManualInvalid:
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "invalid",
			"message": "The email and token do not match our records. Request a resend to get a fresh token, or contact " + h.supportEmail + " for help.",
		})
	case service.ManualExpired:
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "expired",
			"message": "This verification token has expired. Please request a new one.",
		})
	}
}
