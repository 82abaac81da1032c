package clientdata

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE current_prices (
			symbol TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE TABLE onboarding_status (
			user_id TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return NewRepository(db)
}

type testPayload struct {
	Price float64 `msgpack:"price"`
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("current_prices", "AAPL", testPayload{Price: 187.5}, time.Minute)
	require.NoError(t, err)

	var out testPayload
	ok, err := repo.GetIfFresh("current_prices", "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 187.5, out.Price)
}

func TestGetIfFresh_MissingKey(t *testing.T) {
	repo := setupTestDB(t)

	var out testPayload
	ok, err := repo.GetIfFresh("current_prices", "NOPE", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetIfFresh_ExpiredEntryIsNotReturned(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("current_prices", "AAPL", testPayload{Price: 187.5}, -time.Minute)
	require.NoError(t, err)

	var out testPayload
	ok, err := repo.GetIfFresh("current_prices", "AAPL", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_ReturnsStaleEntry(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("current_prices", "AAPL", testPayload{Price: 187.5}, -time.Minute)
	require.NoError(t, err)

	var out testPayload
	ok, err := repo.Get("current_prices", "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 187.5, out.Price)
}

func TestStore_Upserts(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("current_prices", "AAPL", testPayload{Price: 100}, time.Minute))
	require.NoError(t, repo.Store("current_prices", "AAPL", testPayload{Price: 200}, time.Minute))

	var out testPayload
	ok, err := repo.GetIfFresh("current_prices", "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 200.0, out.Price)
}

func TestInvalidate(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("onboarding_status", "user-1", testPayload{Price: 1}, time.Minute))
	require.NoError(t, repo.Invalidate("onboarding_status", "user-1"))

	var out testPayload
	ok, err := repo.Get("onboarding_status", "user-1", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("current_prices", "AAPL", testPayload{Price: 100}, time.Minute))
	require.NoError(t, repo.Store("current_prices", "OLD1", testPayload{Price: 1}, -time.Minute))
	require.NoError(t, repo.Store("current_prices", "OLD2", testPayload{Price: 2}, -time.Minute))
	require.NoError(t, repo.Store("onboarding_status", "user-1", testPayload{Price: 1}, -time.Minute))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(2), results["current_prices"])
	assert.Equal(t, int64(1), results["onboarding_status"])

	var out testPayload
	ok, err := repo.Get("current_prices", "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, ok, "fresh entry survives cleanup")
}

func TestInvalidTableNameRejected(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("users; DROP TABLE current_prices", "k", testPayload{}, time.Minute)
	assert.Error(t, err)

	var out testPayload
	_, err = repo.Get("bogus", "k", &out)
	assert.Error(t, err)

	err = repo.Invalidate("bogus", "k")
	assert.Error(t, err)
}
