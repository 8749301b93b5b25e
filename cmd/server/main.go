package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"taskAssignment/internal/auth"
	"taskAssignment/internal/config"
	"taskAssignment/internal/db"
	grpcserver "taskAssignment/internal/grpc"
	"taskAssignment/internal/httpapi"
	"taskAssignment/internal/observability"
	"taskAssignment/internal/service"
	"taskAssignment/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		observability.NewLogger("info", "json", os.Stderr).WithError(err).Fatal("load config")
	}
	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	log.WithField("config", cfg.String()).Info("configuration loaded")

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.WithError(err).Warn("close db")
		}
	}()

	users := repository.NewUserRepository(d)
	tasks := repository.NewTaskRepository(d)

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)
	if err != nil {
		log.WithError(err).Fatal("password hasher")
	}
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		log.WithError(err).Fatal("token service")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	authSvc := service.NewAuthService(users, hasher, tokens, metrics, log)
	taskSvc := service.NewTaskService(users, tasks, metrics, log)

	httpSrv := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: httpapi.NewHandler(httpapi.Deps{
			Auth:        authSvc,
			Tasks:       taskSvc,
			Tokens:      tokens,
			Health:      observability.NewHealthChecker(d),
			Metrics:     metrics,
			Log:         log,
			CORSOrigins: cfg.CORS.Origins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.HTTP.Address).Info("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	// Start gRPC
	shutdownGRPC, err := grpcserver.StartGRPC(cfg, tokens, taskSvc, metrics, log)
	if err != nil {
		log.WithError(err).Fatal("start grpc")
	}
	log.WithField("addr", cfg.GRPC.Address).Info("grpc server listening")

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}
	if err := shutdownGRPC(ctx); err != nil {
		log.WithError(err).Warn("grpc shutdown")
	}
}
