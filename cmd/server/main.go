package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/job_board/internal/config"
	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/httpserver"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/search"
	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/pkg/db"
	"github.com/Skotchmaster/job_board/pkg/logging"
	"github.com/Skotchmaster/job_board/pkg/middleware/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gdb, err := db.Open(startCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb, models.All()...); err != nil {
		logger.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	store := &repo.GormRepo{DB: gdb}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("redis_url_invalid", "error", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(startCtx).Err(); err != nil {
			logger.Warn("redis_unavailable", "error", err)
		}
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaProducer(cfg.KafkaBrokers)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	jobs := &service.JobService{Repo: store, Events: publisher}
	if cfg.ESURL != "" {
		es, err := search.NewClient(startCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_unavailable", "error", err)
		} else {
			jobs.Search = search.NewJobIndex(es, cfg.ESIndex)
			logger.Info("search_enabled", "index", cfg.ESIndex)
		}
	}

	tokens := &service.TokenIssuer{
		Repo:         store,
		AccessSecret: cfg.JWTSecret,
		AccessTTL:    cfg.AccessTokenTTL,
		RefreshTTL:   cfg.RefreshTokenTTL,
	}

	e := httpserver.NewEcho(httpserver.Options{
		Logger:      logger,
		Production:  cfg.Production(),
		CORSOrigins: cfg.CORSOrigins,
	})
	httpserver.Register(e, &httpserver.Deps{
		Auth:          &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: store, Tokens: tokens, Events: publisher}},
		Companies:     &httpserver.CompanyHTTP{Svc: &service.CompanyService{Repo: store}},
		Jobs:          &httpserver.JobHTTP{Svc: jobs},
		Applications:  &httpserver.ApplicationHTTP{Svc: &service.ApplicationService{Repo: store, Events: publisher}},
		SavedJobs:     &httpserver.SavedJobHTTP{Svc: &service.SavedJobService{Repo: store}},
		Notifications: &httpserver.NotificationHTTP{Svc: &service.NotificationService{Repo: store}},
		Alerts:        &httpserver.JobAlertHTTP{Svc: &service.JobAlertService{Repo: store}},
		JWTSecret:     cfg.JWTSecret,
		AuthLimiter: ratelimit.New(ratelimit.Config{
			Limit:  cfg.RateLimitAuth,
			Window: cfg.RateLimitWindow,
			Prefix: cfg.ServiceName + ":auth",
			Redis:  rdb,
			Logger: logger,
		}),
		Ready: store.Ping,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("server_listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_failed", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	logger.Info("shutdown_complete")
}
