package handler

import (
	"html/template"
	"io"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/render"

	"github.com/stretchr/testify/mock"
)

// MockFeedbackService is a mock implementation of FeedbackService.
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) CastVote(req *model.VoteRequest) (*model.VoteResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoteResult), args.Error(1)
}

func (m *MockFeedbackService) SubmitAccuracy(req *model.AccuracyRequest) (*model.AccuracyResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccuracyResult), args.Error(1)
}

// MockWasteService is a mock implementation of WasteService.
type MockWasteService struct {
	mock.Mock
}

func (m *MockWasteService) LogWaste(req *model.WasteLogRequest) (*model.WasteLogResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteLogResult), args.Error(1)
}

func (m *MockWasteService) List() []model.WasteLogEntry {
	args := m.Called()
	return args.Get(0).([]model.WasteLogEntry)
}

// MockAggregationService is a mock implementation of AggregationService.
type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) CurrentDay() model.DayKey {
	return m.Called().Get(0).(model.DayKey)
}

func (m *MockAggregationService) Dishes() []model.Dish {
	return m.Called().Get(0).([]model.Dish)
}

func (m *MockAggregationService) MenuFor(day model.DayKey) []model.MenuItem {
	return m.Called(day).Get(0).([]model.MenuItem)
}

func (m *MockAggregationService) TodayMenu() []model.MenuItem {
	return m.Called().Get(0).([]model.MenuItem)
}

func (m *MockAggregationService) Accuracy(day model.DayKey) map[string]model.AccuracyCount {
	return m.Called(day).Get(0).(map[string]model.AccuracyCount)
}

func (m *MockAggregationService) TodayTotals() model.Totals {
	return m.Called().Get(0).(model.Totals)
}

func (m *MockAggregationService) WastedPerDish() model.Series {
	return m.Called().Get(0).(model.Series)
}

func (m *MockAggregationService) VotesPerDish() model.Series {
	return m.Called().Get(0).(model.Series)
}

func (m *MockAggregationService) MaxVotesForDay(day model.DayKey) int {
	return m.Called(day).Int(0)
}

func (m *MockAggregationService) VoteBoard(day model.DayKey) model.VoteBoard {
	return m.Called(day).Get(0).(model.VoteBoard)
}

func (m *MockAggregationService) AccuracyPercent(yes, total int) (int, error) {
	args := m.Called(yes, total)
	return args.Int(0), args.Error(1)
}

// MockPanelRenderer is a mock implementation of PanelRenderer.
// Page writes the active view id so tests can see what was rendered.
type MockPanelRenderer struct {
	mock.Mock
}

func (m *MockPanelRenderer) Page(w io.Writer, views render.Views, opts render.Options) error {
	args := m.Called(views.Active(), opts)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "<main data-view=\""+views.Active()+"\"></main>")
	return err
}

func (m *MockPanelRenderer) Panel(id string, opts render.Options) (template.HTML, error) {
	args := m.Called(id, opts)
	return args.Get(0).(template.HTML), args.Error(1)
}

func (m *MockPanelRenderer) Refresh(ids []string, opts render.Options) (map[string]string, error) {
	args := m.Called(ids, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockPanelRenderer) RebuildCharts() map[string]*render.Chart {
	return m.Called().Get(0).(map[string]*render.Chart)
}
