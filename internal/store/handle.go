package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shoaib/notekeeper/internal/cryptox"
	"github.com/shoaib/notekeeper/internal/logging"
)

// Handle is an open connection to one user's store. While open, the store
// lives as a plaintext SQLite working file; Flush reseals it into the
// durable AES-GCM envelope and Close removes the working files again.
//
// A Handle is driven from a single goroutine; the surrounding Session
// enforces the one-open-store invariant.
type Handle struct {
	db         *sql.DB
	sealKey    []byte
	sealedPath string
	workPath   string
	log        logging.Logger
	closed     bool
}

// DB exposes the underlying database for repositories.
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Closed reports whether Close has completed on this handle.
func (h *Handle) Closed() bool {
	return h.closed
}

// Flush checkpoints the WAL into the working file and atomically reseals it
// to the durable path. Called after every write operation so the sealed copy
// trails the working store by at most one flush.
func (h *Handle) Flush(ctx context.Context) error {
	if h.closed {
		return errors.New("flush on closed store handle")
	}

	if _, err := h.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		return fmt.Errorf("checkpoint store: %w", err)
	}

	plain, err := os.ReadFile(h.workPath)
	if err != nil {
		return fmt.Errorf("read working store: %w", err)
	}

	envelope, err := cryptox.Seal(plain, h.sealKey)
	if err != nil {
		return fmt.Errorf("seal store: %w", err)
	}

	tmp := h.sealedPath + ".tmp"
	if err := os.WriteFile(tmp, envelope, 0o600); err != nil {
		return fmt.Errorf("write sealed store: %w", err)
	}
	if err := os.Rename(tmp, h.sealedPath); err != nil {
		return fmt.Errorf("commit sealed store: %w", err)
	}

	h.log.Debug(ctx, "store flushed", "path", h.sealedPath, "bytes", len(envelope))
	return nil
}

// Close flushes, releases the database, and removes the plaintext working
// files. If the final flush fails the working files are kept so the janitor
// policy, not this method, decides their fate on the next open.
func (h *Handle) Close(ctx context.Context) error {
	if h.closed {
		return nil
	}

	flushErr := h.Flush(ctx)

	if err := h.db.Close(); err != nil {
		h.log.Warn(ctx, "error closing store database", "error", err)
	}
	h.closed = true

	if flushErr != nil {
		h.log.Error(ctx, "final flush failed, keeping working files", "error", flushErr)
		return flushErr
	}

	for _, suffix := range auxSuffixes {
		if err := os.Remove(h.workPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.log.Warn(ctx, "failed to remove working file", "path", h.workPath+suffix, "error", err)
		}
	}

	h.log.Info(ctx, "store closed", "path", h.sealedPath)
	return nil
}
