package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/DhavalSuthar-24/scoutnet/config"
	_ "github.com/DhavalSuthar-24/scoutnet/docs"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/cache"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/responses"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/utils"
	"github.com/DhavalSuthar-24/scoutnet/routes"
	hash "github.com/DhavalSuthar-24/scoutnet/utils"
)

// @title ScoutNet REST API
// @version 1.0
// @description Backend for the ScoutNet football scouting platform.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	cfg := config.GetConfig()
	responses.SetProduction(cfg.IsProduction())
	hash.SetCost(cfg.App.BcryptCost)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.DB.AutoMigrate(routes.Models()...); err != nil {
		logger.Logger.Fatal().Err(err).Msg("AutoMigrate failed")
	}
	logger.Logger.Info().Msg("AutoMigrate successful")

	if err := seedAdmin(ctx, cfg, user.NewUserRepository(config.DB)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to open media storage")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := routes.SetupRoutes(routes.Deps{
		Config:   cfg,
		DB:       config.DB,
		Store:    store,
		Cache:    cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password),
		Registry: reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
	if sqlDB, err := config.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.MediaStore, error) {
	if strings.EqualFold(cfg.Storage.Driver, "s3") {
		return storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			CDNBaseURL:      cfg.Storage.CDNBaseURL,
		})
	}
	return storage.NewLocalStore(cfg.App.UploadDir, strings.TrimRight(cfg.App.PublicBaseURL, "/")+"/public/uploads")
}

// seedAdmin creates the first admin from ADMIN_EMAIL / ADMIN_PASSWORD when it does not exist yet.
func seedAdmin(ctx context.Context, cfg *config.Config, users user.UserRepository) error {
	email := utils.NormalizeEmail(cfg.Admin.Email)
	if email == "" || cfg.Admin.Password == "" {
		return nil
	}
	exists, err := users.EmailExists(ctx, email)
	if err != nil || exists {
		return err
	}
	hashed, err := hash.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}
	admin := &user.User{
		Name:     cfg.Admin.Name,
		Email:    email,
		Password: hashed,
		Role:     user.RoleAdmin,
		Status:   user.StatusActive,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return err
	}
	logger.Info(ctx).Str("email", email).Msg("Seeded admin account")
	return nil
}
