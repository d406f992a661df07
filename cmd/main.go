package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project_space/internal/config"
	"project_space/internal/handlers"
	"project_space/internal/imagehost"
	"project_space/internal/logger"
	"project_space/internal/repository"
	"project_space/internal/repository/db"
	"project_space/internal/server"
	"project_space/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables always win
	dotEnvErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel, logFormat(cfg))
	defer func() { _ = log.Sync() }()

	if dotEnvErr != nil && !errors.Is(dotEnvErr, fs.ErrNotExist) {
		log.Warnw("failed to load .env", "err", dotEnvErr)
	}

	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DBPath)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	images, err := newImageHost(cfg)
	if err != nil {
		log.Fatalw("failed to init image host", "err", err)
	}
	if cfg.Images.Bucket == "" {
		log.Warnw("S3_BUCKET is not set; image uploads will fail")
	}

	// wire dependencies
	repos := repository.NewRepository(conn)
	tokens := service.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	services := service.NewService(repos, tokens, images)
	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		CookieName:     cfg.Auth.CookieName,
		Production:     cfg.IsProduction(),
		MaxUploadSize:  cfg.Images.MaxUploadSize,
		AllowedOrigins: cfg.FrontendOrigins,
	})

	srv := server.New(cfg.Port, apiHandler.HTTPHandler())
	go func() {
		log.Infow("server listening", "addr", srv.Addr(), "env", cfg.Env)
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

func logFormat(cfg *config.Config) string {
	if cfg.IsProduction() {
		return logger.FormatJSON
	}
	return logger.FormatConsole
}

func newImageHost(cfg *config.Config) (*imagehost.S3Host, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return imagehost.New(ctx, imagehost.Config{
		Bucket:        cfg.Images.Bucket,
		Region:        cfg.Images.Region,
		Endpoint:      cfg.Images.Endpoint,
		AccessKey:     cfg.Images.AccessKey,
		SecretKey:     cfg.Images.SecretKey,
		PublicBaseURL: cfg.Images.PublicBaseURL,
		Folder:        cfg.Images.Folder,
		UsePathStyle:  cfg.Images.UsePathStyle,
	})
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
