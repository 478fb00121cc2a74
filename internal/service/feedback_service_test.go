package service

import (
	"testing"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_CastVote(t *testing.T) {
	f := newFixture(t, seed.Demo(), monday)
	before := f.store.Votes(model.Mon)

	var result *model.VoteResult
	for i := 0; i < 3; i++ {
		var err error
		result, err = f.feedback.CastVote(&model.VoteRequest{Day: model.Mon, DishID: "pizza"})
		require.NoError(t, err)
	}

	assert.Equal(t, 18, result.Count)
	assert.Equal(t, []string{model.PanelVote, model.PanelVotesChart}, result.Refresh)

	after := f.store.Votes(model.Mon)
	assert.Equal(t, 18, after["pizza"])
	assert.Equal(t, before["jerk-chicken"], after["jerk-chicken"])
	assert.Equal(t, before["veggie-pasta"], after["veggie-pasta"])
}

func TestFeedbackService_CastVote_AnyDayAnyDish(t *testing.T) {
	f := newFixture(t, seed.Demo(), monday)

	result, err := f.feedback.CastVote(&model.VoteRequest{Day: model.Thu, DishID: "pizza"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestFeedbackService_CastVote_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.VoteRequest
		expected error
	}{
		{name: "Weekend day", req: &model.VoteRequest{Day: "Sat", DishID: "pizza"}, expected: model.ErrInvalidDay},
		{name: "Unknown dish", req: &model.VoteRequest{Day: model.Mon, DishID: "sushi"}, expected: model.ErrDishNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seed.Demo(), monday)

			result, err := f.feedback.CastVote(tt.req)

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, result)
			assert.Equal(t, seed.Demo().Votes, f.store.AllVotes())
		})
	}

	f := newFixture(t, seed.Demo(), monday)
	_, err := f.feedback.CastVote(nil)
	assert.Error(t, err)
}

// fourDishMonday returns a seed whose Monday menu has four dishes.
func fourDishMonday() *seed.Seed {
	s := seed.Demo()
	s.Menu[model.Mon] = []string{"jerk-chicken", "veggie-pasta", "pizza", "tacos"}
	return s
}

func TestFeedbackService_SubmitAccuracy(t *testing.T) {
	f := newFixture(t, fourDishMonday(), monday)

	result, err := f.feedback.SubmitAccuracy(&model.AccuracyRequest{
		Responses: map[string]model.AccuracyResponse{
			"jerk-chicken": model.ResponseYes,
			"veggie-pasta": model.ResponseYes,
			"pizza":        model.ResponseYes,
			"tacos":        model.ResponseNo,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 75, result.Percent)
	assert.Equal(t, 4, result.Responses)
	assert.Equal(t, 3, result.Yes)
	assert.Equal(t, model.Mon, result.Day)
	assert.Equal(t, "Thank you! Today's menu accuracy from your responses: 75%.", result.Message)
	assert.Equal(t, []string{model.PanelAccuracy}, result.Refresh)

	acc := f.store.Accuracy(model.Mon)
	assert.Equal(t, model.AccuracyCount{Yes: 1}, acc["pizza"])
	assert.Equal(t, model.AccuracyCount{No: 1}, acc["tacos"])
}

func TestFeedbackService_SubmitAccuracy_SkipsUnansweredAndOffMenu(t *testing.T) {
	f := newFixture(t, seed.Demo(), monday)

	result, err := f.feedback.SubmitAccuracy(&model.AccuracyRequest{
		Responses: map[string]model.AccuracyResponse{
			"pizza":      model.ResponseNo,
			"baked-fish": model.ResponseYes, // not on Monday's menu
			"sushi":      model.ResponseYes, // not in the catalog
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Responses)
	assert.Equal(t, 0, result.Percent)

	acc := f.store.Accuracy(model.Mon)
	assert.Len(t, acc, 1)
	assert.Equal(t, model.AccuracyCount{No: 1}, acc["pizza"])
}

func TestFeedbackService_SubmitAccuracy_NoDedup(t *testing.T) {
	f := newFixture(t, seed.Demo(), monday)
	req := &model.AccuracyRequest{Responses: map[string]model.AccuracyResponse{"pizza": model.ResponseYes}}

	for i := 0; i < 3; i++ {
		_, err := f.feedback.SubmitAccuracy(req)
		require.NoError(t, err)
	}

	assert.Equal(t, model.AccuracyCount{Yes: 3}, f.store.Accuracy(model.Mon)["pizza"])
}

func TestFeedbackService_SubmitAccuracy_WeekendRecordsMonday(t *testing.T) {
	f := newFixture(t, seed.Demo(), saturday)

	result, err := f.feedback.SubmitAccuracy(&model.AccuracyRequest{
		Responses: map[string]model.AccuracyResponse{"jerk-chicken": model.ResponseYes},
	})

	require.NoError(t, err)
	assert.Equal(t, model.Mon, result.Day)
	assert.Equal(t, 1, f.store.Accuracy(model.Mon)["jerk-chicken"].Yes)
}

func TestFeedbackService_SubmitAccuracy_Errors(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]model.AccuracyResponse
		expected  error
	}{
		{name: "No responses", responses: nil, expected: model.ErrNoResponses},
		{name: "Only off-menu responses", responses: map[string]model.AccuracyResponse{"stir-fry": model.ResponseYes}, expected: model.ErrNoResponses},
		{name: "Invalid response value", responses: map[string]model.AccuracyResponse{"pizza": "maybe"}, expected: model.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seed.Demo(), monday)

			result, err := f.feedback.SubmitAccuracy(&model.AccuracyRequest{Responses: tt.responses})

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, result)
			assert.Empty(t, f.store.Accuracy(model.Mon))
		})
	}
}
