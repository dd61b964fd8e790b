package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"liveagenda/config"
	_ "liveagenda/docs"
	"liveagenda/internal/adapters/auth"
	"liveagenda/internal/adapters/email"
	httpdelivery "liveagenda/internal/delivery/http"
	"liveagenda/internal/delivery/http/controllers"
	"liveagenda/internal/delivery/http/middleware"
	"liveagenda/internal/repository/postgres"
	"liveagenda/internal/services"
)

// @title LiveAgenda API
// @version 1.0
// @description Event-scheduling backend: users create, search, delete, and bookmark lives.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	db, err := openDatabase(context.Background(), cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	// Adapters
	hasher := auth.NewBcryptHasher(10)
	tokens := auth.NewJWTCodec(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	// Repositories
	liveRepo := postgres.NewLiveRepository(db)
	savedLiveRepo := postgres.NewSavedLiveRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	liveSvc := services.NewLiveService(liveRepo, savedLiveRepo, cfg.ServiceTimeout)
	userSvc := services.NewUserService(userRepo, hasher, tokens, cfg.JWTExpiry, emailSvc, cfg.ServiceTimeout)

	// HTTP delivery
	liveController := controllers.NewLiveController(logger, liveSvc)
	userController := controllers.NewUserController(logger, userSvc)
	mux := httpdelivery.NewRouter(liveController, userController, tokens)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("API listening", "addr", server.Addr, "env", cfg.Environment)
	return server.ListenAndServe()
}

func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
