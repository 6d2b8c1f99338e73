package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoaib/notekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestSanitize_DeletesPlaintextDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes_user_1.db")

	header := append([]byte("SQLite format 3\x00"), make([]byte, 100)...)
	writeFile(t, path, header)

	SanitizeStoreFiles(context.Background(), dir, "notes_user_1.db", testLogger())

	assert.False(t, fileExists(t, path), "plaintext store must be deleted")
}

func TestSanitize_LeavesZeroLengthFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes_user_1.db")
	writeFile(t, path, nil)

	SanitizeStoreFiles(context.Background(), dir, "notes_user_1.db", testLogger())

	assert.True(t, fileExists(t, path), "zero-length file must be left untouched")
}

func TestSanitize_DeletesTooShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes_user_1.db")
	writeFile(t, path, []byte("stub"))

	SanitizeStoreFiles(context.Background(), dir, "notes_user_1.db", testLogger())

	assert.False(t, fileExists(t, path), "unverifiable short file must be deleted")
}

func TestSanitize_KeepsSealedLookingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes_user_1.db")

	// A sealed store begins with a random nonce, never the SQLite magic.
	writeFile(t, path, []byte{0x9c, 0x41, 0x07, 0x5e, 0x22, 0xb1, 0x8a, 0x13, 0xf4, 0x67, 0x2d, 0x99, 0x55, 0x01, 0xee, 0xcd, 0xaa, 0xbb})

	SanitizeStoreFiles(context.Background(), dir, "notes_user_1.db", testLogger())

	assert.True(t, fileExists(t, path), "sealed store must be kept")
}

func TestSanitize_ChecksAuxiliaryFiles(t *testing.T) {
	dir := t.TempDir()

	plaintext := append([]byte("SQLite format 3\x00"), make([]byte, 32)...)
	walPath := filepath.Join(dir, "notes_user_1.db-wal")
	shmPath := filepath.Join(dir, "notes_user_1.db-shm")
	journalPath := filepath.Join(dir, "notes_user_1.db-journal")

	writeFile(t, walPath, plaintext)
	writeFile(t, shmPath, nil)             // zero-length, kept
	writeFile(t, journalPath, []byte("x")) // short, deleted

	SanitizeStoreFiles(context.Background(), dir, "notes_user_1.db", testLogger())

	assert.False(t, fileExists(t, walPath))
	assert.True(t, fileExists(t, shmPath))
	assert.False(t, fileExists(t, journalPath))
}

func TestSanitize_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	// Must not create anything or panic.
	SanitizeStoreFiles(context.Background(), dir, "absent.db", testLogger())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
