package router

import (
	"net/http"

	"cafeteria-dash/internal/handler"
	"cafeteria-dash/internal/middleware"

	"github.com/rs/zerolog"
)

// staffPrefixes are the routes guarded by the staff API key.
var staffPrefixes = []string{"/api/waste"}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	dashboardHandler *handler.DashboardHandler,
	feedbackHandler *handler.FeedbackHandler,
	wasteHandler *handler.WasteHandler,
	statsHandler *handler.StatsHandler,
	staffAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// HTML dashboard
	mux.HandleFunc("GET /", dashboardHandler.Page)
	mux.HandleFunc("GET /panels/{panel}", dashboardHandler.Panel)
	mux.HandleFunc("POST /forms/vote", dashboardHandler.VoteForm)
	mux.HandleFunc("POST /forms/accuracy", dashboardHandler.AccuracyForm)
	mux.HandleFunc("POST /forms/waste", dashboardHandler.WasteForm)

	// Student API
	mux.HandleFunc("GET /api/dishes", statsHandler.Dishes)
	mux.HandleFunc("GET /api/menu/{day}", statsHandler.Menu)
	mux.HandleFunc("GET /api/votes/{day}", feedbackHandler.GetVotes)
	mux.HandleFunc("POST /api/votes", feedbackHandler.CastVote)
	mux.HandleFunc("GET /api/accuracy/{day}", feedbackHandler.GetAccuracy)
	mux.HandleFunc("POST /api/accuracy", feedbackHandler.SubmitAccuracy)

	// Staff API
	mux.HandleFunc("GET /api/waste", wasteHandler.List)
	mux.HandleFunc("POST /api/waste", wasteHandler.Create)
	mux.HandleFunc("GET /api/stats/today", statsHandler.Today)
	mux.HandleFunc("GET /api/charts", statsHandler.Charts)

	return middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.RequestID,
		middleware.CORS,
		middleware.StaffKeyAuth(staffAPIKey, staffPrefixes, logger),
	)
}
