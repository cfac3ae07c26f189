package routes

import (
	"net/http"

	"github.com/africahouse/tradeportal/internal/app"
	"github.com/africahouse/tradeportal/internal/handler"
	"github.com/africahouse/tradeportal/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.VerificationService, app.Cfg.JWTExpiry, app.Cfg.SupportEmail)
	company := handler.NewCompanyHandler(app.CompanyService)
	profile := handler.NewProfileHandler(app.ProfileService)
	chat := handler.NewChatHandler(app.ChatService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Check)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /logout", auth.Logout)

	// Email verification: signed-link path, resend, and the manual fallback
	mux.HandleFunc("GET /verify-email/{token}", auth.VerifyEmail)
	mux.HandleFunc("POST /resend-verification", rateLimiter(auth.ResendVerification))
	mux.HandleFunc("POST /manual-verification", rateLimiter(auth.ManualVerification))

	// Company directory
	mux.HandleFunc("GET /companies", company.List)
	mux.HandleFunc("GET /companies/{id}", company.Get)

	// Chat assistant
	mux.HandleFunc("POST /ask", chat.Ask)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /me", middleware.RequireAuth(auth.Me))

	// Vendor profile
	mux.HandleFunc("GET /vendor/profile", middleware.RequireVendor(profile.Get))
	mux.HandleFunc("PUT /vendor/profile", middleware.RequireVendor(profile.Update))
	mux.HandleFunc("POST /vendor/profile/logo", middleware.RequireVendor(profile.UploadLogo))
	mux.HandleFunc("POST /vendor/profile/images", middleware.RequireVendor(profile.UploadProductImage))
	mux.HandleFunc("DELETE /vendor/profile/images/{id}", middleware.RequireVendor(profile.DeleteImage))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserRepository),
	)
}
