// Command libraryseed fills a library records database with generated users, books and lendings.
//
// It writes through the regular command handlers, so all business rules apply.
// Records which already exist are skipped, running it twice is harmless.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

const (
	defaultNumUsers    = 50
	defaultNumBooks    = 500
	defaultBorrowRatio = 0.3
	seedTimeout        = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("seeding failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	seedCfg := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	pool, err := config.PostgresPGXPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	store, err := postgresengine.NewStoreFromPGXPool(pool)
	if err != nil {
		return err
	}

	if err = store.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	plan, err := newPlan(seedCfg)
	if err != nil {
		return err
	}

	stats, err := newSeeder(store).Seed(ctx, plan)
	if err != nil {
		return err
	}

	logger.Info(
		"seeding finished",
		"users_registered", stats.UsersRegistered,
		"books_added", stats.BooksAdded,
		"books_borrowed", stats.BooksBorrowed,
		"skipped", stats.Skipped,
	)

	return nil
}

func parseFlags() seedConfig {
	var (
		numUsers    = flag.Int("users", defaultNumUsers, "Number of users to register")
		numBooks    = flag.Int("books", defaultNumBooks, "Number of books to add")
		borrowRatio = flag.Float64("borrow-ratio", defaultBorrowRatio, "Share of books to lend out (0.0 - 1.0)")
		randomSeed  = flag.Uint64("seed", 1, "Seed for the random generator")
	)

	flag.Parse()

	return seedConfig{
		NumUsers:    *numUsers,
		NumBooks:    *numBooks,
		BorrowRatio: *borrowRatio,
		RandomSeed:  *randomSeed,
		Today:       time.Now(),
	}
}
