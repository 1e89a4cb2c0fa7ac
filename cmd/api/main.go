package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/config"
	dbpkg "github.com/BruksfildServices01/champa-store/internal/db"
	"github.com/BruksfildServices01/champa-store/internal/imaging"
	"github.com/BruksfildServices01/champa-store/internal/logger"
	"github.com/BruksfildServices01/champa-store/internal/metrics"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	"github.com/BruksfildServices01/champa-store/internal/routes"
	"github.com/BruksfildServices01/champa-store/internal/session"
	"github.com/BruksfildServices01/champa-store/internal/storage"
	"github.com/BruksfildServices01/champa-store/internal/timezone"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	// --------- Sessions ---------

	var sessions session.Store
	if cfg.UseRedisSessions() {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.SessionPrefix, cfg.SessionTTL)
		log.Info("sessions stored in redis")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		log.Info("sessions stored in memory")
	}

	// --------- Uploads ---------

	var (
		store      storage.Storage
		uploadsDir string
	)
	switch cfg.StorageDriver {
	case "s3":
		store = storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		local, err := storage.NewLocal(cfg.UploadsDir, cfg.PublicBasePath)
		if err != nil {
			return err
		}
		store = local
		uploadsDir = local.Dir()
	}

	// --------- HTTP ---------

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(),
		middleware.Metrics(m),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Sessions:   sessions,
		Storage:    store,
		Processor:  imaging.NewProcessor(cfg.ImageMaxDimension, cfg.ImageMaxPixels),
		Metrics:    m,
		Location:   timezone.Location(cfg.Timezone),
		UploadsDir: uploadsDir,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
