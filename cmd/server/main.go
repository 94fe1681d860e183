package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weddinghub/internal/config"
	"weddinghub/internal/database"
	"weddinghub/internal/handlers"
	"weddinghub/internal/models"
	"weddinghub/internal/repository"
	"weddinghub/internal/security"
	"weddinghub/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	guestRepo := repository.NewGuestRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Seed the first admin account when the users table is empty
	if err := seedAdmin(userRepo, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize services
	emailService, err := service.NewEmailService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	lockout := security.NewLockoutTracker(security.NewMemoryAttemptStore(),
		security.DefaultMaxLoginAttempts, security.DefaultLockoutDuration)
	grants := security.NewGrantIssuer(cfg.GrantSecret, security.DefaultGrantTTL)

	rsvpService := service.NewRSVPService(guestRepo, emailLogRepo, emailService)
	guestService := service.NewGuestService(guestRepo, emailLogRepo, emailService)
	inviteService := service.NewInviteService(guestRepo, emailLogRepo, emailService, cfg.WeddingYear)
	importService := service.NewImportService(guestRepo, cfg.UploadMaxSize)
	authService := service.NewAuthService(userRepo, emailLogRepo, lockout, emailService,
		cfg.SecurityAlertEmail, cfg.SessionDuration)
	sheetsService := service.NewSheetsService(cfg.GoogleClientID, cfg.GoogleClientSecret,
		cfg.AppBaseURL+"/api/admin/sheets/callback", importService)

	// Initialize middleware and handlers
	limiter := security.NewRateLimiter(30, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)

	rsvpHandler := handlers.NewRSVPHandler(rsvpService, grants)
	publicHandler := handlers.NewPublicHandler(guestService, venueRepo, partyRepo)
	authHandler := handlers.NewAuthHandler(authService)
	adminGuestHandler := handlers.NewAdminGuestHandler(guestService, importService, inviteService)
	adminEmailHandler := handlers.NewAdminEmailHandler(inviteService, emailService, emailLogRepo, guestRepo)
	adminPartyHandler := handlers.NewAdminPartyHandler(partyRepo)
	adminUserHandler := handlers.NewAdminUserHandler(userRepo)
	adminSheetsHandler := handlers.NewAdminSheetsHandler(sheetsService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/save-the-date", middleware.RateLimit(publicHandler.SubmitSaveTheDate))
	mux.HandleFunc("GET /api/venue", publicHandler.GetVenue)
	mux.HandleFunc("GET /api/events", publicHandler.GetEvents)
	mux.HandleFunc("GET /api/hotels", publicHandler.GetHotels)
	mux.HandleFunc("GET /api/wedding-party", publicHandler.GetWeddingParty)

	// RSVP flow
	mux.HandleFunc("GET /api/rsvp/access", rsvpHandler.CheckAccess)
	mux.HandleFunc("GET /api/rsvp/{code}", middleware.RateLimit(rsvpHandler.LookupCode))
	mux.HandleFunc("POST /api/rsvp/{code}", middleware.RateLimit(rsvpHandler.SubmitRSVP))

	// Email open tracking webhook
	mux.HandleFunc("POST /api/emails/opened/{messageID}", adminEmailHandler.TrackOpen)

	// Admin auth
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/admin/me", middleware.RequireAdmin(authHandler.Me))

	// Admin guest management
	mux.HandleFunc("GET /api/admin/guests", middleware.RequireAdmin(adminGuestHandler.ListGuests))
	mux.HandleFunc("POST /api/admin/guests", middleware.RequireAdmin(adminGuestHandler.CreateGuest))
	mux.HandleFunc("GET /api/admin/guests/stats", middleware.RequireAdmin(adminGuestHandler.Stats))
	mux.HandleFunc("GET /api/admin/guests/export", middleware.RequireAdmin(adminGuestHandler.ExportCSV))
	mux.HandleFunc("GET /api/admin/guests/import/template", middleware.RequireAdmin(adminGuestHandler.DownloadTemplate))
	mux.HandleFunc("POST /api/admin/guests/import/preview", middleware.RequireAdmin(adminGuestHandler.PreviewImport))
	mux.HandleFunc("POST /api/admin/guests/import", middleware.RequireAdmin(adminGuestHandler.Import))
	mux.HandleFunc("POST /api/admin/guests/generate-codes", middleware.RequireAdmin(adminGuestHandler.GenerateCodes))
	mux.HandleFunc("GET /api/admin/guests/{id}", middleware.RequireAdmin(adminGuestHandler.GetGuest))
	mux.HandleFunc("PUT /api/admin/guests/{id}", middleware.RequireAdmin(adminGuestHandler.UpdateGuest))
	mux.HandleFunc("DELETE /api/admin/guests/{id}", middleware.RequireAdmin(adminGuestHandler.DeleteGuest))

	// Admin email tools
	mux.HandleFunc("POST /api/admin/emails/campaign", middleware.RequireAdmin(adminEmailHandler.SendCampaign))
	mux.HandleFunc("GET /api/admin/emails/campaign/preview", middleware.RequireAdmin(adminEmailHandler.CampaignPreview))
	mux.HandleFunc("GET /api/admin/emails/campaign/stats", middleware.RequireAdmin(adminEmailHandler.CampaignStats))
	mux.HandleFunc("GET /api/admin/emails/stats", middleware.RequireAdmin(adminEmailHandler.Stats))
	mux.HandleFunc("GET /api/admin/emails/recent", middleware.RequireAdmin(adminEmailHandler.Recent))
	mux.HandleFunc("POST /api/admin/emails/test", middleware.RequireAdmin(adminEmailHandler.SendTest))

	// Admin wedding party management
	mux.HandleFunc("GET /api/admin/wedding-party", middleware.RequireAdmin(adminPartyHandler.List))
	mux.HandleFunc("POST /api/admin/wedding-party", middleware.RequireAdmin(adminPartyHandler.Create))
	mux.HandleFunc("PUT /api/admin/wedding-party/{id}", middleware.RequireAdmin(adminPartyHandler.Update))
	mux.HandleFunc("DELETE /api/admin/wedding-party/{id}", middleware.RequireAdmin(adminPartyHandler.Delete))

	// Admin user management
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(adminUserHandler.List))
	mux.HandleFunc("POST /api/admin/users", middleware.RequireAdmin(adminUserHandler.Create))
	mux.HandleFunc("PUT /api/admin/users/{id}/password", middleware.RequireAdmin(adminUserHandler.ChangePassword))
	mux.HandleFunc("DELETE /api/admin/users/{id}", middleware.RequireAdmin(adminUserHandler.Delete))

	// Google Sheets import
	mux.HandleFunc("GET /api/admin/sheets/auth", middleware.RequireAdmin(adminSheetsHandler.Start))
	mux.HandleFunc("GET /api/admin/sheets/callback", middleware.RequireAdmin(adminSheetsHandler.Callback))
	mux.HandleFunc("POST /api/admin/sheets/import", middleware.RequireAdmin(adminSheetsHandler.Import))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(userRepo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// seedAdmin creates the configured admin account on first run
func seedAdmin(users *repository.UserRepository, cfg *config.Config) error {
	count, err := users.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("No admin users found and ADMIN_EMAIL/ADMIN_PASSWORD not set; admin login unavailable")
		return nil
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:        strings.ToLower(cfg.AdminEmail),
		PasswordHash: hash,
		Name:         "Admin",
		IsAdmin:      true,
	}
	if err := users.Create(user); err != nil {
		return err
	}

	log.Printf("Seeded admin user: %s", cfg.AdminEmail)
	return nil
}

// cleanupExpiredSessions clears expired admin sessions hourly
func cleanupExpiredSessions(users *repository.UserRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := users.DeleteExpiredSessions(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	}
}
