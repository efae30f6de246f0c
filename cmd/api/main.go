package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zragie/ngo-receipts-api/internal/application/service"
	"github.com/zragie/ngo-receipts-api/internal/config"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/database"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/repository"
	"github.com/zragie/ngo-receipts-api/internal/infrastructure/storage"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/handler"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/routes"
	"github.com/zragie/ngo-receipts-api/pkg/email"
	"github.com/zragie/ngo-receipts-api/pkg/oauth"
	"github.com/zragie/ngo-receipts-api/pkg/receiptpdf"
	"github.com/zragie/ngo-receipts-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize the object store holding logos and rendered PDFs
	store, err := storage.NewDiskStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Receipt branding
	var brandColor *receiptpdf.RGB
	if color, err := receiptpdf.ParseHexColor(cfg.Brand.Color); err == nil {
		brandColor = &color
	} else {
		log.Printf("Warning: invalid BRAND_COLOR %q, using the default: %v", cfg.Brand.Color, err)
	}

	logoFetcher := storage.NewLogoFetcher(store, cfg.Storage.FetchTimeout)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, settingsRepo, jwtManager, emailService)
	organizationService := service.NewOrganizationService(organizationRepo, store, cfg.Storage.UploadMaxSize)
	receiptService := service.NewReceiptService(
		receiptRepo,
		organizationRepo,
		userRepo,
		settingsRepo,
		store,
		logoFetcher,
		emailService,
		brandColor,
		cfg.Brand.CurrencyPrefix,
	)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService, googleOAuthService),
		Organization: handler.NewOrganizationHandler(organizationService),
		Receipt:      handler.NewReceiptHandler(receiptService),
		Settings:     handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
