package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"cafeteria-dash/internal/model"
	"cafeteria-dash/internal/seed"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCatalog_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	loader := seed.NewPostgresLoader(testDB.Pool, zerolog.Nop())

	t.Run("catalog round trip serves the dashboard", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB.Pool, seed.Demo())

		s, err := loader.Load(context.Background(), "catalog")
		require.NoError(t, err)
		assert.Empty(t, s.WasteLog)

		server := SetupTestServer(t, s, mondayLunch)

		w := do(t, server, http.MethodGet, "/api/dishes", "", false)
		require.Equal(t, http.StatusOK, w.Code)
		var dishes []model.Dish
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dishes))
		assert.Equal(t, seed.Demo().Dishes, dishes)

		assert.Equal(t, 15, voteCounts(t, server, model.Mon)["pizza"])

		// The catalog carries no waste rows, so today starts empty.
		_, totals := todayTotals(t, server)
		assert.Equal(t, model.Totals{}, totals)
	})

	t.Run("broken catalog is refused", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		_, err := loader.Load(context.Background(), "catalog")
		assert.Error(t, err)
	})
}
