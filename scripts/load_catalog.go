//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"cafeteria-dash/internal/config"
	"cafeteria-dash/internal/database"
	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Creates the catalog tables in the DB_* database and fills them from
// SEED_FILE, or from the built-in demo data when SEED_FILE is not set.
//
//	DB_PASSWORD=postgres go run scripts/load_catalog.go
func main() {
	os.Setenv("SEED_SOURCE", config.SeedPostgres)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	s := seed.Demo()
	if path := os.Getenv("SEED_FILE"); path != "" {
		s, err = seed.NewFileLoader(logger).Load(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to read %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	if err := database.ApplySchema(ctx, pool, seed.Schema, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := insertCatalog(ctx, pool, s); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d dishes into %s\n", len(s.Dishes), dbName)
}

// insertCatalog replaces the catalog tables with s in one transaction.
func insertCatalog(ctx context.Context, pool *pgxpool.Pool, s *seed.Seed) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, table := range []string{"starting_votes", "dish_availability", "weekly_menu", "dishes"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		batch := &pgx.Batch{}
		for i, d := range s.Dishes {
			batch.Queue("INSERT INTO dishes (id, name, station, position) VALUES ($1, $2, $3, $4)",
				d.ID, d.Name, d.Station, i)
		}
		for _, day := range model.DayKeys() {
			for i, id := range s.Menu[day] {
				batch.Queue("INSERT INTO weekly_menu (day, position, dish_id) VALUES ($1, $2, $3)",
					string(day), i, id)
			}
		}
		for id, status := range s.Availability {
			batch.Queue("INSERT INTO dish_availability (dish_id, status) VALUES ($1, $2)",
				id, string(status))
		}
		for day, counts := range s.Votes {
			for id, n := range counts {
				batch.Queue("INSERT INTO starting_votes (day, dish_id, votes) VALUES ($1, $2, $3)",
					string(day), id, n)
			}
		}

		return tx.SendBatch(ctx, batch).Close()
	})
}
