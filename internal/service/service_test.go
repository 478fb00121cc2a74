package service

import (
	"testing"
	"time"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"
	"cafeteria-dash/internal/store"

	"github.com/rs/zerolog"
)

var (
	monday   = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, time.October, 24, 12, 0, 0, 0, time.UTC)
)

func clockAt(t time.Time) model.Clock {
	return func() time.Time { return t }
}

// fixture wires the services over a store built from s.
type fixture struct {
	store    *store.Store
	stats    AggregationService
	feedback FeedbackService
	waste    WasteService
}

func newFixture(t *testing.T, s *seed.Seed, now time.Time) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	clock := clockAt(now)

	st := store.New(s, clock, logger)
	stats := NewAggregationService(st, clock, logger)
	return &fixture{
		store:    st,
		stats:    stats,
		feedback: NewFeedbackService(st, stats, logger),
		waste:    NewWasteService(st, stats, logger),
	}
}

// seedWithoutWaste is the demo seed with an empty waste log.
func seedWithoutWaste() *seed.Seed {
	s := seed.Demo()
	s.WasteLog = nil
	return s
}
