package notes

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestInsert_AssignsIdentifier(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Insert(ctx, &Note{Title: "A", Description: "B", CreatedAt: 100})
	require.NoError(t, err)
	assert.Positive(t, id)

	id2, err := r.Insert(ctx, &Note{Title: "C", Description: "D", CreatedAt: 200})
	require.NoError(t, err)
	assert.Greater(t, id2, id, "identifiers are monotonically assigned")
}

func TestInsert_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Insert(ctx, &Note{Title: "Groceries", Description: "milk\neggs", CreatedAt: 1700000000000})
	require.NoError(t, err)

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Groceries", got[0].Title)
	assert.Equal(t, "milk\neggs", got[0].Description)
	assert.Equal(t, int64(1700000000000), got[0].CreatedAt)
}

func TestInsert_UpsertReplacesWholeRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	id, err := r.Insert(ctx, &Note{Title: "old", Description: "old body", CreatedAt: 100})
	require.NoError(t, err)

	got, err := r.Insert(ctx, &Note{ID: id, Title: "new", Description: "new body", CreatedAt: 200})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "new", all[0].Title)
	assert.Equal(t, "new body", all[0].Description)
	assert.Equal(t, int64(200), all[0].CreatedAt)
}

func TestListAll_NewestFirstTiesByInsertionOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// Two notes share a timestamp; insertion order decides between them.
	_, err := r.Insert(ctx, &Note{Title: "first", Description: "x", CreatedAt: 100})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &Note{Title: "tie-a", Description: "x", CreatedAt: 200})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &Note{Title: "tie-b", Description: "x", CreatedAt: 200})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &Note{Title: "latest", Description: "x", CreatedAt: 300})
	require.NoError(t, err)

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	titles := []string{got[0].Title, got[1].Title, got[2].Title, got[3].Title}
	assert.Equal(t, []string{"latest", "tie-a", "tie-b", "first"}, titles)
}

func TestListAll_EmptyStore(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
