package seed

import (
	"context"
	"fmt"

	"cafeteria-dash/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the read-only catalog layout consumed by the Postgres loader.
const Schema = `
	CREATE TABLE IF NOT EXISTS dishes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		station TEXT NOT NULL,
		position INT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS weekly_menu (
		day TEXT NOT NULL CHECK (day IN ('Mon', 'Tue', 'Wed', 'Thu', 'Fri')),
		position INT NOT NULL,
		dish_id TEXT NOT NULL REFERENCES dishes(id),
		PRIMARY KEY (day, position)
	);
	CREATE TABLE IF NOT EXISTS dish_availability (
		dish_id TEXT PRIMARY KEY REFERENCES dishes(id),
		status TEXT NOT NULL CHECK (status IN ('available', 'low', 'soldout'))
	);
	CREATE TABLE IF NOT EXISTS starting_votes (
		day TEXT NOT NULL,
		dish_id TEXT NOT NULL REFERENCES dishes(id),
		votes INT NOT NULL CHECK (votes >= 0),
		PRIMARY KEY (day, dish_id)
	);
`

// postgresLoader implements Loader by reading the catalog tables.
type postgresLoader struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresLoader creates a seed loader backed by PostgreSQL.
// Rows are read once at startup; nothing is ever written back.
func NewPostgresLoader(pool *pgxpool.Pool, logger zerolog.Logger) Loader {
	return &postgresLoader{
		pool:   pool,
		logger: logger.With().Str("component", "postgres-seed-loader").Logger(),
	}
}

// Load reads dishes, weekly menu, availability and starting votes.
// The source argument is only used for logging.
func (l *postgresLoader) Load(ctx context.Context, source string) (*Seed, error) {
	l.logger.Info().Str("source", source).Msg("loading seed from postgres")

	s := &Seed{
		Menu:         model.WeeklyMenu{},
		Availability: map[string]model.Availability{},
		Votes:        model.VoteTally{},
	}

	if err := l.loadDishes(ctx, s); err != nil {
		return nil, err
	}
	if err := l.loadMenu(ctx, s); err != nil {
		return nil, err
	}
	if err := l.loadAvailability(ctx, s); err != nil {
		return nil, err
	}
	if err := l.loadVotes(ctx, s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		l.logger.Error().Err(err).Msg("postgres seed failed validation")
		return nil, fmt.Errorf("invalid seed %s: %w", source, err)
	}

	l.logger.Info().
		Int("dishes", len(s.Dishes)).
		Int("menu_days", len(s.Menu)).
		Msg("seed loaded successfully from postgres")

	return s, nil
}

func (l *postgresLoader) loadDishes(ctx context.Context, s *Seed) error {
	rows, err := l.pool.Query(ctx, `SELECT id, name, station FROM dishes ORDER BY position, id`)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to query dishes")
		return fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d model.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Station); err != nil {
			return fmt.Errorf("failed to scan dish: %w", err)
		}
		s.Dishes = append(s.Dishes, d)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating dishes: %w", err)
	}
	return nil
}

func (l *postgresLoader) loadMenu(ctx context.Context, s *Seed) error {
	rows, err := l.pool.Query(ctx, `SELECT day, dish_id FROM weekly_menu ORDER BY day, position`)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to query weekly menu")
		return fmt.Errorf("failed to query weekly menu: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day, dishID string
		if err := rows.Scan(&day, &dishID); err != nil {
			return fmt.Errorf("failed to scan menu row: %w", err)
		}
		key := model.DayKey(day)
		s.Menu[key] = append(s.Menu[key], dishID)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating weekly menu: %w", err)
	}
	return nil
}

func (l *postgresLoader) loadAvailability(ctx context.Context, s *Seed) error {
	rows, err := l.pool.Query(ctx, `SELECT dish_id, status FROM dish_availability`)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to query availability")
		return fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dishID, status string
		if err := rows.Scan(&dishID, &status); err != nil {
			return fmt.Errorf("failed to scan availability row: %w", err)
		}
		s.Availability[dishID] = model.Availability(status)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating availability: %w", err)
	}
	return nil
}

func (l *postgresLoader) loadVotes(ctx context.Context, s *Seed) error {
	rows, err := l.pool.Query(ctx, `SELECT day, dish_id, votes FROM starting_votes`)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to query starting votes")
		return fmt.Errorf("failed to query starting votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day, dishID string
		var votes int
		if err := rows.Scan(&day, &dishID, &votes); err != nil {
			return fmt.Errorf("failed to scan vote row: %w", err)
		}
		key := model.DayKey(day)
		if s.Votes[key] == nil {
			s.Votes[key] = map[string]int{}
		}
		s.Votes[key][dishID] = votes
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating starting votes: %w", err)
	}
	return nil
}
