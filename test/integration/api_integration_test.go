package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mondayLunch  = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	saturdayNoon = time.Date(2026, time.October, 24, 12, 0, 0, 0, time.UTC)
)

func do(t *testing.T, server http.Handler, method, path, body string, staff bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if staff {
		req.Header.Set("X-API-Key", StaffKey)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func voteCounts(t *testing.T, server http.Handler, day model.DayKey) map[string]int {
	t.Helper()

	w := do(t, server, http.MethodGet, "/api/votes/"+string(day), "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var board model.VoteBoard
	require.NoError(t, json.NewDecoder(w.Body).Decode(&board))

	counts := map[string]int{}
	for _, row := range board.Rows {
		counts[row.ID] = row.Count
	}
	return counts
}

func todayTotals(t *testing.T, server http.Handler) (model.DayKey, model.Totals) {
	t.Helper()

	w := do(t, server, http.MethodGet, "/api/stats/today", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Day    model.DayKey `json:"day"`
		Totals model.Totals `json:"totals"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Day, resp.Totals
}

func TestVotingAPI_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), mondayLunch)

	t.Run("three votes move pizza from 15 to 18", func(t *testing.T) {
		before := voteCounts(t, server, model.Mon)
		require.Equal(t, 15, before["pizza"])

		for range 3 {
			w := do(t, server, http.MethodPost, "/api/votes", `{"day":"Mon","dishId":"pizza"}`, false)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		after := voteCounts(t, server, model.Mon)
		assert.Equal(t, 18, after["pizza"])
		assert.Equal(t, before["jerk-chicken"], after["jerk-chicken"])
		assert.Equal(t, before["veggie-pasta"], after["veggie-pasta"])
	})

	t.Run("vote chart follows votes", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/charts", "", false)
		require.Equal(t, http.StatusOK, w.Code)

		var charts map[string]struct {
			Series model.Series `json:"series"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&charts))
		assert.Equal(t, []int{23, 22, 10, 38, 17, 54}, charts["votesByDish"].Series.Values)
		assert.Equal(t, []int{12, 10, 14, 10, 0, 0}, charts["wasteByDish"].Series.Values)
	})

	t.Run("unknown dish is rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/votes", `{"day":"Mon","dishId":"sushi"}`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeDishNotFound, resp.Error)
		assert.NotEmpty(t, resp.CorrelationID)
	})

	t.Run("vote form posts through the dashboard", func(t *testing.T) {
		form := url.Values{"day": {"Mon"}, "dishId": {"jerk-chicken"}}
		req := httptest.NewRequest(http.MethodPost, "/forms/vote", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 13, voteCounts(t, server, model.Mon)["jerk-chicken"])
	})
}

func TestAccuracyAPI_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), mondayLunch)

	t.Run("empty submission is rejected without mutation", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/accuracy", `{"responses":{}}`, false)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.ErrCodeNoResponses, resp.Error)
		assert.Equal(t, "Select at least one response before submitting.", resp.Message)
	})

	t.Run("off-menu answers are skipped", func(t *testing.T) {
		body := `{"responses":{"jerk-chicken":"yes","veggie-pasta":"yes","pizza":"no","tacos":"yes"}}`
		w := do(t, server, http.MethodPost, "/api/accuracy", body, false)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Result  model.AccuracyResult `json:"result"`
			Refresh map[string]string    `json:"refresh"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 3, resp.Result.Responses)
		assert.Equal(t, 67, resp.Result.Percent)
		assert.Equal(t, "Thank you! Today's menu accuracy from your responses: 67%.", resp.Result.Message)
		assert.Contains(t, resp.Refresh, model.PanelAccuracy)
	})

	t.Run("tally is visible per dish", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/accuracy/Mon", "", false)
		require.Equal(t, http.StatusOK, w.Code)

		var tally map[string]model.AccuracyCount
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tally))
		assert.Equal(t, model.AccuracyCount{Yes: 1}, tally["jerk-chicken"])
		assert.Equal(t, model.AccuracyCount{No: 1}, tally["pizza"])
		assert.NotContains(t, tally, "tacos")
	})
}

func TestWasteAPI_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), mondayLunch)

	t.Run("seeded totals for Monday", func(t *testing.T) {
		day, totals := todayTotals(t, server)
		assert.Equal(t, model.Mon, day)
		assert.Equal(t, model.Totals{Prepared: 100, Served: 78, Wasted: 22}, totals)
	})

	t.Run("unbalanced row is rejected and totals stay", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/waste",
			`{"dishId":"pizza","meal":"lunch","prepared":10,"served":5,"wasted":10}`, true)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		_, totals := todayTotals(t, server)
		assert.Equal(t, model.Totals{Prepared: 100, Served: 78, Wasted: 22}, totals)
	})

	t.Run("balanced row is appended", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/waste",
			`{"dishId":"pizza","meal":"dinner","prepared":30,"served":25,"wasted":5}`, true)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Result  model.WasteLogResult `json:"result"`
			Refresh map[string]string    `json:"refresh"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, model.Mon, resp.Result.Entry.Date)
		assert.Equal(t, "Log added (demo only).", resp.Result.Message)
		assert.Len(t, resp.Refresh, 3)

		_, totals := todayTotals(t, server)
		assert.Equal(t, model.Totals{Prepared: 130, Served: 103, Wasted: 27}, totals)

		list := do(t, server, http.MethodGet, "/api/waste", "", true)
		require.Equal(t, http.StatusOK, list.Code)
		var entries []model.WasteLogEntry
		require.NoError(t, json.NewDecoder(list.Body).Decode(&entries))
		assert.Len(t, entries, 5)
	})

	t.Run("staff key is required", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/waste", "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWeekend_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), saturdayNoon)

	day, totals := todayTotals(t, server)
	assert.Equal(t, model.Mon, day)
	assert.Equal(t, 100, totals.Prepared)

	w := do(t, server, http.MethodGet, "/api/menu/today", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var menu []model.MenuItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&menu))
	require.Len(t, menu, 3)
	assert.Equal(t, "jerk-chicken", menu[0].ID)
}

func TestDashboardPage_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), mondayLunch)

	w := do(t, server, http.MethodGet, "/?view=stats", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Jerk Chicken")
	assert.Contains(t, body, `<section id="stats" class="view active">`)
	assert.Contains(t, body, `<dd id="stat-prepared">100</dd>`)
	assert.Contains(t, body, `<canvas id="wasteByDishChart"`)
}

func TestCORS_Integration(t *testing.T) {
	server := SetupTestServer(t, seed.Demo(), mondayLunch)

	t.Run("OPTIONS request returns CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/votes", nil)
		w := httptest.NewRecorder()

		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
