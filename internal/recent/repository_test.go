package recent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaylorONeal/jetsweep/internal/database"
	"github.com/TaylorONeal/jetsweep/internal/recent"
	"github.com/TaylorONeal/jetsweep/internal/timeline"
)

func sampleSearches() []recent.Search {
	return []recent.Search{
		{
			ID:          "a",
			Airport:     "ATL",
			AirportName: "Atlanta Hartsfield-Jackson",
			TripType:    timeline.TripDomestic,
			LeaveTime:   time.Date(2026, time.October, 21, 7, 53, 0, 0, time.UTC),
			FlightTime:  time.Date(2026, time.October, 21, 12, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2026, time.October, 21, 6, 0, 0, 0, time.UTC),
		},
		{
			ID:          "b",
			Airport:     "LHR",
			AirportName: "LHR",
			TripType:    timeline.TripInternational,
			LeaveTime:   time.Date(2026, time.October, 22, 15, 0, 0, 0, time.UTC),
			FlightTime:  time.Date(2026, time.October, 22, 20, 30, 0, 0, time.UTC),
			CreatedAt:   time.Date(2026, time.October, 21, 5, 0, 0, 0, time.UTC),
		},
	}
}

func exerciseRepository(t *testing.T, repo recent.Repository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	require.NoError(t, repo.Store(ctx, sampleSearches()))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSearches(), loaded)

	// Store replaces the whole document.
	require.NoError(t, repo.Store(ctx, sampleSearches()[1:]))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ID)

	require.NoError(t, repo.Clear(ctx))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Clearing an empty store is fine.
	require.NoError(t, repo.Clear(ctx))
}

func TestInMemoryRepository(t *testing.T) {
	exerciseRepository(t, recent.NewInMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, database.MemorySQLite)
	require.NoError(t, err)
	defer db.Close()

	repo := recent.NewSQLiteRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation is idempotent")

	exerciseRepository(t, repo)
}

func TestSQLiteRepository_CorruptData(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, database.MemorySQLite)
	require.NoError(t, err)
	defer db.Close()

	repo := recent.NewSQLiteRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)`, recent.StorageKey, "{not json")
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, recent.ErrCorruptData)
}

func TestSQLiteRepository_DocumentShape(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, database.MemorySQLite)
	require.NoError(t, err)
	defer db.Close()
	sqlRepo := recent.NewSQLiteRepository(db)
	require.NoError(t, sqlRepo.EnsureSchema(ctx))
	require.NoError(t, sqlRepo.Store(ctx, sampleSearches()[:1]))

	var raw string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, recent.StorageKey).Scan(&raw))
	assert.JSONEq(t, `[{
		"id": "a",
		"airport": "ATL",
		"airportName": "Atlanta Hartsfield-Jackson",
		"tripType": "domestic",
		"leaveTime": "2026-10-21T07:53:00Z",
		"flightTime": "2026-10-21T12:00:00Z",
		"createdAt": "2026-10-21T06:00:00Z"
	}]`, raw)
}
