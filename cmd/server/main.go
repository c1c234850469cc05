package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	apphandler "insureease/internal/application/handler"
	appmetrics "insureease/internal/application/metrics"
	appservice "insureease/internal/application/service"
	appstore "insureease/internal/application/store"
	"insureease/internal/audit"
	httpapi "insureease/internal/http"
	"insureease/internal/notify"
	"insureease/internal/platform/config"
	"insureease/internal/platform/httpserver"
	"insureease/internal/platform/logger"
	"insureease/internal/platform/metrics"
	platformredis "insureease/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	applications, closeStore, err := buildStore(cfg)
	if err != nil {
		log.Error("failed to initialize store", "error", err.Error())
		os.Exit(1)
	}
	defer closeStore()

	opts := []appservice.Option{
		appservice.WithLogger(log),
		appservice.WithMetrics(appmetrics.New()),
		appservice.WithAudit(audit.NewPublisher(audit.NewInMemoryStore())),
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, appservice.WithStatusCache(
			appstore.NewRedisStatusCache(redisClient.Client, cfg.StatusCacheTTL)))
	}

	svc := appservice.New(applications, buildMailer(cfg, log), opts...)

	router := httpapi.NewRouter(httpapi.Options{
		Logger:         log,
		Metrics:        metrics.New(),
		Applications:   apphandler.New(svc, log),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting insureease server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

// buildStore selects PostgreSQL when a DSN is configured, the in-memory store
// otherwise.
func buildStore(cfg config.Server) (appstore.ApplicationStore, func(), error) {
	if cfg.PostgresDSN == "" {
		return appstore.NewInMemory(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return appstore.NewPostgres(db), func() { db.Close() }, nil
}

func buildMailer(cfg config.Server, log *slog.Logger) notify.Mailer {
	if cfg.SMTP.Host == "" {
		return notify.NewLog(log)
	}
	return notify.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
}
