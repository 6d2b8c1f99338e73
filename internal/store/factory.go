package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/cryptox"
	"github.com/shoaib/notekeeper/internal/logging"
	"github.com/shoaib/notekeeper/internal/store/migrations"
	"github.com/shoaib/notekeeper/internal/vault"

	_ "modernc.org/sqlite"
)

const (
	// systemStoreName is the single non-per-user store holding credentials.
	systemStoreName = "users.db"

	// workSuffix marks the plaintext working copy of a sealed store. A
	// leftover working file starts with the plaintext SQLite magic and is
	// therefore cleaned up by the janitor on the next open.
	workSuffix = ".open"

	sealLabel = "store-seal"
)

// StoreFileName derives the deterministic sealed file name for a user.
func StoreFileName(userID int64) string {
	return fmt.Sprintf("notes_user_%d.db", userID)
}

// Factory builds sealed per-user stores. It is stateless; the Session layer
// owns the one-open-handle invariant.
type Factory struct {
	dir         string
	vault       vault.Vault
	destructive bool
	log         logging.Logger
}

// NewFactory returns a Factory writing stores under dir, keyed by v.
// destructive enables recreate-from-scratch when migrations fail, the
// documented data-loss policy for schema mismatches.
func NewFactory(dir string, v vault.Vault, destructive bool, log logging.Logger) *Factory {
	return &Factory{dir: dir, vault: v, destructive: destructive, log: log.With("component", "store")}
}

// OpenStoreForUser opens (creating if absent) the sealed notes store for the
// given user. Wrong key material fails the open with ErrStoreKeyMismatch and
// no recovery beyond the janitor's proactive cleanup; the caller must treat
// that as fatal for the user's session.
func (f *Factory) OpenStoreForUser(ctx context.Context, userID int64) (*Handle, error) {
	return f.open(ctx, StoreFileName(userID), migrations.Notes())
}

// OpenSystemStore opens the single credentials store.
func (f *Factory) OpenSystemStore(ctx context.Context) (*Handle, error) {
	return f.open(ctx, systemStoreName, migrations.System())
}

func (f *Factory) open(ctx context.Context, name string, migFS fs.FS) (*Handle, error) {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	// Hygiene pass over the sealed file and any working copy a crash left
	// behind, plus their SQLite sidecars.
	SanitizeStoreFiles(ctx, f.dir, name, f.log)
	SanitizeStoreFiles(ctx, f.dir, name+workSuffix, f.log)

	key, err := f.vault.GetOrCreateKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain store key: %w", err)
	}
	sealKey := cryptox.DeriveSubkey(key, sealLabel)

	sealedPath := filepath.Join(f.dir, name)
	workPath := sealedPath + workSuffix
	_ = os.Remove(sealedPath + ".tmp") // stale half-written flush

	if err := f.unsealTo(sealedPath, workPath, sealKey); err != nil {
		return nil, err
	}

	db, err := openSQLite(workPath)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db, migFS); err != nil {
		if !f.destructive {
			_ = db.Close()
			return nil, fmt.Errorf("migrate store %s: %w", name, err)
		}
		f.log.Warn(ctx, "migration failed, recreating store from scratch", "store", name, "error", err)
		_ = db.Close()
		if db, err = f.recreate(ctx, sealedPath, workPath, migFS); err != nil {
			return nil, err
		}
	}

	h := &Handle{
		db:         db,
		sealKey:    sealKey,
		sealedPath: sealedPath,
		workPath:   workPath,
		log:        f.log.With("store", name),
	}

	// Seal immediately so a durable copy exists before the first write.
	if err := h.Flush(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	f.log.Info(ctx, "store opened", "store", name)
	return h, nil
}

// unsealTo decrypts the sealed store into the working path. A missing sealed
// file means a fresh store: any leftover working file was already handled by
// the janitor, so SQLite simply creates a new database.
func (f *Factory) unsealTo(sealedPath, workPath string, sealKey []byte) error {
	envelope, err := os.ReadFile(sealedPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sealed store: %w", err)
	}

	plain, err := cryptox.Open(envelope, sealKey)
	if err != nil {
		return fmt.Errorf("unseal store %s: %w: %w", filepath.Base(sealedPath), err, common.ErrStoreKeyMismatch)
	}

	if err := os.WriteFile(workPath, plain, 0o600); err != nil {
		return fmt.Errorf("write working store: %w", err)
	}
	return nil
}

func (f *Factory) recreate(ctx context.Context, sealedPath, workPath string, migFS fs.FS) (*sql.DB, error) {
	for _, suffix := range auxSuffixes {
		_ = os.Remove(workPath + suffix)
	}
	_ = os.Remove(sealedPath)

	db, err := openSQLite(workPath)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db, migFS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate recreated store: %w", err)
	}
	return db, nil
}

// openSQLite opens the working database single-writer with WAL journaling.
func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure store database: %w", err)
		}
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB, migFS fs.FS) error {
	goose.SetBaseFS(migFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}
