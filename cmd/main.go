package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	httpapi "github.com/SangamithraMB/Sport-buddy-backend/internal/api/http"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/config"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/geocode"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository/model"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/ws"
	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Error("failed to init token manager", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	sportRepo := repository.NewPostgresSportRepository(db)
	playdateRepo := repository.NewPostgresPlaydateRepository(db)
	participantRepo := repository.NewPostgresParticipantRepository(db)
	chatRepo := repository.NewPostgresChatRepository(db)

	geocoder := geocode.New(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout, log)
	directory := ws.NewDirectory(log)

	userService := service.NewUserService(userRepo, sportRepo, tokens, log)
	sportService := service.NewSportService(sportRepo, log)
	playdateService := service.NewPlaydateService(playdateRepo, sportRepo, userRepo, geocoder, log)
	membershipService := service.NewMembershipService(userRepo, playdateRepo, participantRepo, log)
	chatService := service.NewChatService(chatRepo, userRepo, playdateRepo, tokens, directory, log)

	userController := httpapi.NewUserController(userService)
	sportController := httpapi.NewSportController(sportService)
	playdateController := httpapi.NewPlaydateController(playdateService, membershipService)
	chatController := httpapi.NewChatController(chatService, membershipService, tokens, directory, log)

	router := httpapi.SetupRouter(
		userController,
		sportController,
		playdateController,
		chatController,
		httpapi.AuthMiddleware(tokens),
	)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Sport{},
		&model.SportInterest{},
		&model.Playdate{},
		&model.Participant{},
		&model.Chat{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
