package service

import (
	"fmt"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/store"

	"github.com/rs/zerolog"
)

// WasteLoggedMessage is shown after a waste row was appended.
const WasteLoggedMessage = "Log added (demo only)."

// wasteService implements WasteService.
type wasteService struct {
	store  *store.Store
	stats  AggregationService
	logger zerolog.Logger
}

// NewWasteService creates a new waste service.
func NewWasteService(st *store.Store, stats AggregationService, logger zerolog.Logger) WasteService {
	return &wasteService{
		store:  st,
		stats:  stats,
		logger: logger.With().Str("service", "waste").Logger(),
	}
}

// LogWaste stamps the row with today's day key and appends it. Numeric
// fields are taken as given; the only check is prepared >= served + wasted.
func (s *wasteService) LogWaste(req *model.WasteLogRequest) (*model.WasteLogResult, error) {
	if req == nil {
		return nil, fmt.Errorf("waste request is nil")
	}
	if _, ok := s.store.Dish(req.DishID); !ok {
		s.logger.Warn().Str("dish_id", req.DishID).Msg("waste log for unknown dish")
		return nil, model.ErrDishNotFound
	}

	entry, err := s.store.AppendWasteLog(model.WasteLogEntry{
		Date:     s.stats.CurrentDay(),
		Meal:     req.Meal,
		DishID:   req.DishID,
		Prepared: req.Prepared,
		Served:   req.Served,
		Wasted:   req.Wasted,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("dish_id", req.DishID).
			Int("prepared", req.Prepared).
			Int("served", req.Served).
			Int("wasted", req.Wasted).
			Msg("waste log rejected")
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", entry.ID.String()).
		Str("day", string(entry.Date)).
		Str("dish_id", entry.DishID).
		Int("wasted", entry.Wasted).
		Msg("waste logged")

	return &model.WasteLogResult{
		Entry:   entry,
		Message: WasteLoggedMessage,
		Refresh: WasteRefresh,
	}, nil
}

func (s *wasteService) List() []model.WasteLogEntry {
	return s.store.WasteLog()
}
