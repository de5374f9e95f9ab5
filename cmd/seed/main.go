package main

import (
	"Watchlist/internal/config"
	"Watchlist/internal/repo"
	"Watchlist/internal/seed"
	"Watchlist/internal/service"
	"Watchlist/internal/validation"
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"
)

func main() {
	// флаги объявляем до NewConfig: там вызывается flag.Parse
	email := flag.String("email", "", "email пользователя, которому добавляются записи")
	count := flag.Int("count", seed.DefaultCount, "сколько записей создать")
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	if *email == "" || *count <= 0 {
		sugar.Errorw("usage: seed -email <user> [-count 100]")
		_ = logger.Sync()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN, repo.PoolOptions{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() { _ = repo.CloseDB(gormDB) }()

	v := validation.New()
	s := &seed.Seeder{
		Users:   service.NewUserService(repo.NewUserRepository(gormDB, cfg.DBTimeout), v),
		Entries: service.NewEntryService(repo.NewEntryRepository(gormDB, cfg.DBTimeout), v, sugar),
		Logger:  sugar,
	}

	sugar.Infow("Seeding database...", "email", *email, "count", *count)
	n, err := s.Run(ctx, *email, *count)
	if err != nil {
		sugar.Errorw("Error seeding database", "created", n, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	sugar.Infow("Database seeded successfully", "created", n)
}
