package service

import (
	"fmt"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/store"

	"github.com/rs/zerolog"
)

// feedbackService implements FeedbackService.
type feedbackService struct {
	store  *store.Store
	stats  AggregationService
	logger zerolog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(st *store.Store, stats AggregationService, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		store:  st,
		stats:  stats,
		logger: logger.With().Str("service", "feedback").Logger(),
	}
}

// CastVote adds one vote. There is no rate limit and no per-student dedup.
func (s *feedbackService) CastVote(req *model.VoteRequest) (*model.VoteResult, error) {
	if req == nil {
		return nil, fmt.Errorf("vote request is nil")
	}
	if !req.Day.Valid() {
		return nil, model.ErrInvalidDay
	}
	if _, ok := s.store.Dish(req.DishID); !ok {
		s.logger.Warn().Str("dish_id", req.DishID).Msg("vote for unknown dish")
		return nil, model.ErrDishNotFound
	}

	n := s.store.RecordVote(req.Day, req.DishID)

	s.logger.Info().
		Str("day", string(req.Day)).
		Str("dish_id", req.DishID).
		Int("count", n).
		Msg("vote cast")

	return &model.VoteResult{
		Day:     req.Day,
		DishID:  req.DishID,
		Count:   n,
		Refresh: VoteRefresh,
	}, nil
}

// SubmitAccuracy walks today's menu and records the response given for each
// dish. Unanswered dishes and ids not on today's menu are skipped. At least
// one response is required; otherwise nothing is recorded.
func (s *feedbackService) SubmitAccuracy(req *model.AccuracyRequest) (*model.AccuracyResult, error) {
	if req == nil {
		return nil, fmt.Errorf("accuracy request is nil")
	}
	for _, r := range req.Responses {
		if !r.Valid() {
			return nil, model.ErrInvalidResponse
		}
	}

	day := s.stats.CurrentDay()

	type answer struct {
		dishID   string
		response model.AccuracyResponse
	}
	var answers []answer
	yes := 0
	for _, id := range s.store.Menu(day) {
		r, ok := req.Responses[id]
		if !ok {
			continue
		}
		answers = append(answers, answer{dishID: id, response: r})
		if r == model.ResponseYes {
			yes++
		}
	}

	percent, err := s.stats.AccuracyPercent(yes, len(answers))
	if err != nil {
		s.logger.Debug().Str("day", string(day)).Msg("empty reality check rejected")
		return nil, err
	}

	for _, a := range answers {
		s.store.RecordAccuracyResponse(day, a.dishID, a.response)
	}

	s.logger.Info().
		Str("day", string(day)).
		Int("responses", len(answers)).
		Int("yes", yes).
		Int("percent", percent).
		Msg("reality check recorded")

	return &model.AccuracyResult{
		Day:       day,
		Responses: len(answers),
		Yes:       yes,
		Percent:   percent,
		Message:   fmt.Sprintf("Thank you! Today's menu accuracy from your responses: %d%%.", percent),
		Refresh:   AccuracyRefresh,
	}, nil
}
