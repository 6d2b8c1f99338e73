package store

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/cryptox"
	"github.com/shoaib/notekeeper/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestFactory(t *testing.T) (*Factory, string) {
	t.Helper()
	dir := t.TempDir()
	v := vault.NewFileVault(filepath.Join(dir, "vault"), testLogger())
	return NewFactory(dir, v, true, testLogger()), dir
}

func TestOpenStoreForUser_CreatesSealedStore(t *testing.T) {
	f, dir := newTestFactory(t)
	ctx := context.Background()

	h, err := f.OpenStoreForUser(ctx, 7)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close(ctx) })

	sealed, err := os.ReadFile(filepath.Join(dir, "notes_user_7.db"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sealed), 16)
	assert.False(t, bytes.HasPrefix(sealed, []byte("SQLite format 3")),
		"sealed store must not carry the plaintext magic")
}

func TestOpenStoreForUser_RoundTripsData(t *testing.T) {
	f, _ := newTestFactory(t)
	ctx := context.Background()

	h, err := f.OpenStoreForUser(ctx, 7)
	require.NoError(t, err)

	_, err = h.DB().ExecContext(ctx,
		`INSERT INTO notes (title, description, created_at) VALUES (?, ?, ?)`,
		"A", "B", 1700000000000)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	// Reopen and verify the row survived the seal/unseal cycle.
	h2, err := f.OpenStoreForUser(ctx, 7)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h2.Close(ctx) })

	var title, description string
	err = h2.DB().QueryRowContext(ctx, `SELECT title, description FROM notes`).Scan(&title, &description)
	require.NoError(t, err)
	assert.Equal(t, "A", title)
	assert.Equal(t, "B", description)
}

func TestOpenStoreForUser_RemovesWorkingFilesOnClose(t *testing.T) {
	f, dir := newTestFactory(t)
	ctx := context.Background()

	h, err := f.OpenStoreForUser(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".open", "plaintext working files must be removed")
	}
}

func TestOpenStoreForUser_WrongKeyFails(t *testing.T) {
	f, dir := newTestFactory(t)
	ctx := context.Background()

	h, err := f.OpenStoreForUser(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	// Same directory, different vault: the sealed file cannot be opened.
	other := vault.NewFileVault(filepath.Join(dir, "other-vault"), testLogger())
	f2 := NewFactory(dir, other, true, testLogger())

	_, err = f2.OpenStoreForUser(ctx, 1)
	assert.ErrorIs(t, err, common.ErrStoreKeyMismatch)
}

func TestOpenStoreForUser_DeletesLegacyPlaintextStore(t *testing.T) {
	f, dir := newTestFactory(t)
	ctx := context.Background()

	// A leftover plaintext database from an unencrypted build.
	legacy := filepath.Join(dir, "notes_user_5.db")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	writeFile(t, legacy, append([]byte("SQLite format 3\x00"), make([]byte, 64)...))

	h, err := f.OpenStoreForUser(ctx, 5)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close(ctx) })

	// The store was recreated from scratch: no rows, sealed format on disk.
	var n int
	require.NoError(t, h.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenStoreForUser_DestructiveRecreateOnMigrationFailure(t *testing.T) {
	f, dir := newTestFactory(t)
	ctx := context.Background()

	// Seal a database whose schema conflicts with the migrations (a notes
	// table already present without goose bookkeeping).
	h, err := f.OpenStoreForUser(ctx, 9)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	conflictPath := filepath.Join(dir, "conflict.work")
	db, err := sql.Open("sqlite", conflictPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (wrong_column TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	sealConflictOver(t, f, conflictPath, filepath.Join(dir, "notes_user_9.db"))

	h2, err := f.OpenStoreForUser(ctx, 9)
	require.NoError(t, err, "destructive recreation must recover from schema mismatch")
	t.Cleanup(func() { _ = h2.Close(ctx) })

	// The recreated store has the migrated schema.
	_, err = h2.DB().ExecContext(ctx,
		`INSERT INTO notes (title, description, created_at) VALUES ('t', 'd', 1)`)
	assert.NoError(t, err)
}

func TestOpenStoreForUser_MigrationFailureFatalWhenNotDestructive(t *testing.T) {
	dir := t.TempDir()
	v := vault.NewFileVault(filepath.Join(dir, "vault"), testLogger())
	f := NewFactory(dir, v, false, testLogger())
	ctx := context.Background()

	h, err := f.OpenStoreForUser(ctx, 9)
	require.NoError(t, err)
	require.NoError(t, h.Close(ctx))

	conflictPath := filepath.Join(dir, "conflict.work")
	db, err := sql.Open("sqlite", conflictPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE notes (wrong_column TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	sealConflictOver(t, f, conflictPath, filepath.Join(dir, "notes_user_9.db"))

	_, err = f.OpenStoreForUser(ctx, 9)
	assert.Error(t, err)
}

// sealConflictOver seals the database at plainPath into sealedPath using the
// factory's vault key, simulating an older store with an incompatible schema.
func sealConflictOver(t *testing.T, f *Factory, plainPath, sealedPath string) {
	t.Helper()
	ctx := context.Background()

	key, err := f.vault.GetOrCreateKey(ctx)
	require.NoError(t, err)

	plain, err := os.ReadFile(plainPath)
	require.NoError(t, err)

	sealed, err := cryptox.Seal(plain, cryptox.DeriveSubkey(key, sealLabel))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(sealedPath, sealed, 0o600))
}

func TestOpenSystemStore_HasUsersTable(t *testing.T) {
	f, _ := newTestFactory(t)
	ctx := context.Background()

	h, err := f.OpenSystemStore(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close(ctx) })

	_, err = h.DB().ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ('alice', 'hash')`)
	assert.NoError(t, err)
}

func TestStoreFileName(t *testing.T) {
	assert.Equal(t, "notes_user_7.db", StoreFileName(7))
	assert.Equal(t, "notes_user_42.db", StoreFileName(42))
}
