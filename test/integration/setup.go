package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"cafeteria-dash/internal/config"
	"cafeteria-dash/internal/database"
	"cafeteria-dash/internal/handler"
	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"
	"cafeteria-dash/internal/router"
	"cafeteria-dash/internal/seed"
	"cafeteria-dash/internal/service"
	"cafeteria-dash/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StaffKey is the staff API key used by the test server.
const StaffKey = "test-staff-key"

// TestDB represents a catalog database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// SetupTestDB creates a PostgreSQL test container holding the catalog schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  4,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	require.NoError(t, err, "failed to create connection pool")
	require.NoError(t, database.ApplySchema(ctx, pool, seed.Schema, logger))

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Config:    dbConfig,
	}
}

// SeedCatalog inserts the catalog part of s in one batch.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool, s *seed.Seed) {
	t.Helper()

	batch := &pgx.Batch{}
	for i, d := range s.Dishes {
		batch.Queue("INSERT INTO dishes (id, name, station, position) VALUES ($1, $2, $3, $4)", d.ID, d.Name, d.Station, i)
	}
	for _, day := range model.DayKeys() {
		for i, id := range s.Menu[day] {
			batch.Queue("INSERT INTO weekly_menu (day, position, dish_id) VALUES ($1, $2, $3)", string(day), i, id)
		}
	}
	for id, status := range s.Availability {
		batch.Queue("INSERT INTO dish_availability (dish_id, status) VALUES ($1, $2)", id, string(status))
	}
	for day, counts := range s.Votes {
		for id, n := range counts {
			batch.Queue("INSERT INTO starting_votes (day, dish_id, votes) VALUES ($1, $2, $3)", string(day), id, n)
		}
	}

	require.NoError(t, pool.SendBatch(context.Background(), batch).Close(), "failed to seed catalog")
}

// CleanupDB empties the catalog tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE starting_votes, dish_availability, weekly_menu, dishes")
	if err != nil {
		t.Logf("failed to clean catalog tables: %v", err)
	}
}

// SetupTestServer wires the full application over s with a fixed clock.
func SetupTestServer(t *testing.T, s *seed.Seed, now time.Time) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	clock := func() time.Time { return now }

	st := store.New(s, clock, logger)
	stats := service.NewAggregationService(st, clock, logger)
	feedbackService := service.NewFeedbackService(st, stats, logger)
	wasteService := service.NewWasteService(st, stats, logger)

	renderer, err := render.NewRenderer(stats, render.NewChartBoard(clock), clock, logger)
	require.NoError(t, err)

	return router.New(
		handler.NewDashboardHandler(feedbackService, wasteService, renderer, logger),
		handler.NewFeedbackHandler(feedbackService, stats, renderer, logger),
		handler.NewWasteHandler(wasteService, renderer, logger),
		handler.NewStatsHandler(stats, renderer, logger),
		StaffKey,
		logger,
	)
}
