package main

import (
	"Watchlist/internal/auth"
	"Watchlist/internal/config"
	"Watchlist/internal/handlers"
	"Watchlist/internal/middleware"
	"Watchlist/internal/repo"
	"Watchlist/internal/service"
	"Watchlist/internal/storage"
	"Watchlist/internal/validation"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	// отмена по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN, repo.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := repo.CloseDB(gormDB); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	err = repo.Ping(pingCtx, gormDB)
	cancel()
	if err != nil {
		sugar.Fatalw("database is not reachable", "error", err)
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
	}

	v := validation.New()
	userService := service.NewUserService(repo.NewUserRepository(gormDB, cfg.DBTimeout), v)
	entryService := service.NewEntryService(repo.NewEntryRepository(gormDB, cfg.DBTimeout), v, sugar)
	issuer := auth.NewIssuer(cfg.AuthSecret, cfg.TokenTTL)

	if cfg.IsProduction() && cfg.HasDefaultSecret() {
		sugar.Warnw("AUTH_SECRET is not set, tokens are signed with the development secret")
	}

	h := handlers.NewHandler(userService, entryService, issuer, store, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"ServerURL", cfg.ServerURL,
		"Env", cfg.Env,
		"Storage", cfg.StorageDriver,
		"CORSOrigin", cfg.CORSOrigin,
	)

	serveErr := make(chan error, 1)
	go func() {
		sugar.Infow("Starting server", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	sugar.Infow("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
