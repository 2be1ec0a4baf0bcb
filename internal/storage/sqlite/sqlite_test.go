package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwatch/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.Initialize(context.Background()), "failed to initialize schema")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSQLiteDB_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id1, err := db.CreateProduct(ctx, models.Product{
		OwnerID:        100,
		PhotoFileID:    "photo-1",
		ExpirationDate: date(2026, 3, 20),
		Returnable:     false,
	})
	require.NoError(t, err)
	assert.Positive(t, id1)

	id2, err := db.CreateProduct(ctx, models.Product{
		OwnerID:        100,
		PhotoFileID:    "photo-2",
		ExpirationDate: date(2026, 4, 1),
		Returnable:     true,
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1, "ids should be generated in insertion order")

	// A different owner's product must not leak into the listing
	_, err = db.CreateProduct(ctx, models.Product{
		OwnerID:        200,
		PhotoFileID:    "photo-other",
		ExpirationDate: date(2026, 3, 20),
	})
	require.NoError(t, err)

	products, err := db.ListByOwner(ctx, 100)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, id1, products[0].ID)
	assert.Equal(t, "photo-1", products[0].PhotoFileID)
	assert.True(t, products[0].ExpirationDate.Equal(date(2026, 3, 20)))
	assert.False(t, products[0].Returnable)

	assert.Equal(t, id2, products[1].ID)
	assert.True(t, products[1].Returnable)

	empty, err := db.ListByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteDB_FindExpiringOn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	target := date(2026, 3, 15)

	_, err := db.CreateProduct(ctx, models.Product{OwnerID: 1, PhotoFileID: "a", ExpirationDate: target})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 2, PhotoFileID: "b", ExpirationDate: target, Returnable: true})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 3, PhotoFileID: "c", ExpirationDate: target.AddDate(0, 0, 1)})
	require.NoError(t, err)

	products, err := db.FindExpiringOn(ctx, target)
	require.NoError(t, err)
	require.Len(t, products, 2, "both returnable and non-returnable products match on the nominal date")

	owners := []int64{products[0].OwnerID, products[1].OwnerID}
	assert.ElementsMatch(t, []int64{1, 2}, owners)
}

func TestSQLiteDB_FindReturnableExpiringOn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	target := date(2026, 3, 19)

	_, err := db.CreateProduct(ctx, models.Product{OwnerID: 1, PhotoFileID: "a", ExpirationDate: target, Returnable: true})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 2, PhotoFileID: "b", ExpirationDate: target, Returnable: false})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 3, PhotoFileID: "c", ExpirationDate: target.AddDate(0, 0, -1), Returnable: true})
	require.NoError(t, err)

	products, err := db.FindReturnableExpiringOn(ctx, target)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].OwnerID)
	assert.True(t, products[0].Returnable)
}

func TestSQLiteDB_DeleteExpiredOn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	yesterday := date(2026, 3, 14)

	_, err := db.CreateProduct(ctx, models.Product{OwnerID: 1, PhotoFileID: "a", ExpirationDate: yesterday})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 1, PhotoFileID: "b", ExpirationDate: yesterday, Returnable: true})
	require.NoError(t, err)
	_, err = db.CreateProduct(ctx, models.Product{OwnerID: 1, PhotoFileID: "c", ExpirationDate: yesterday.AddDate(0, 0, 1)})
	require.NoError(t, err)

	deleted, err := db.DeleteExpiredOn(ctx, yesterday)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted, "deletion matches on nominal date irrespective of the returnable flag")

	remaining, err := db.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "c", remaining[0].PhotoFileID)

	// Deleting again is a no-op
	deleted, err = db.DeleteExpiredOn(ctx, yesterday)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSQLiteDB_StoresNominalDateAsText(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.CreateProduct(ctx, models.Product{
		OwnerID:        1,
		PhotoFileID:    "a",
		ExpirationDate: date(2026, 3, 19),
		Returnable:     true,
	})
	require.NoError(t, err)

	// The stored column holds the entered nominal date in ISO form, not the
	// return-adjusted date
	var stored string
	err = db.db.Raw("SELECT expiration_date FROM products").Scan(&stored).Error
	require.NoError(t, err)
	assert.Equal(t, "2026-03-19", stored)
}
