package app

import (
	"fmt"

	"github.com/africahouse/tradeportal/internal/config"
	"github.com/africahouse/tradeportal/internal/db"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/service"
	"github.com/africahouse/tradeportal/internal/storage"
	"github.com/africahouse/tradeportal/internal/token"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	UserRepository      repository.UserRepository
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	EmailService        *service.EmailService
	CompanyService      *service.CompanyService
	ProfileService      *service.ProfileService
	FileService         *service.FileService
	ChatService         *service.ChatService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	verificationRepository := repository.NewVerificationRepository(database)
	companyRepository := repository.NewCompanyRepository(database)
	profileRepository := repository.NewCompanyProfileRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	signer := token.NewSigner(cfg.SecretKey, token.PurposeEmailVerification)
	verificationService := service.NewVerificationService(
		userRepository,
		verificationRepository,
		emailService,
		signer,
		cfg.TokenEmailVerifyExpiry,
	)
	authService := service.NewAuthService(
		userRepository,
		verificationService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	companyService := service.NewCompanyService(companyRepository)
	fileService := service.NewFileService(fileRepository, fileStorage)
	profileService := service.NewProfileService(profileRepository, fileRepository, fileService)
	chatService := service.NewChatService(
		companyService,
		cfg.ChatAPIKey,
		cfg.ChatBaseURL,
		cfg.ChatModels,
		cfg.SupportEmail,
		cfg.ChatTimeout,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		UserRepository:      userRepository,
		AuthService:         authService,
		VerificationService: verificationService,
		EmailService:        emailService,
		CompanyService:      companyService,
		ProfileService:      profileService,
		FileService:         fileService,
		ChatService:         chatService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
