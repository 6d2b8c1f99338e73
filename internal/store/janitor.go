package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shoaib/notekeeper/internal/logging"
)

// plaintextMagic is the header every unencrypted SQLite file starts with.
// A sealed store is an AES-GCM envelope beginning with a random nonce, so
// this prefix can only mean a plaintext artifact left behind by an older
// build or an interrupted flush.
var plaintextMagic = []byte("SQLite format 3")

// headerSize is the number of header bytes inspected per file.
const headerSize = 16

// auxSuffixes are the sidecar files SQLite keeps next to a database.
var auxSuffixes = []string{"", "-wal", "-shm", "-journal"}

// SanitizeStoreFiles inspects the store file named name in dir, plus its
// write-ahead log, shared-memory index, and rollback journal, and deletes
// anything a subsequent open could choke on:
//
//   - missing files are skipped;
//   - zero-length files are left untouched (no read is attempted);
//   - files shorter than the header are unverifiable and deleted;
//   - files starting with the plaintext SQLite magic are deleted;
//   - anything else is assumed to be a valid sealed store and kept.
//
// Every error is swallowed: on a failed read the file is deleted as a
// fallback, and a failed delete is only logged. The open that follows
// surfaces any remaining problem.
func SanitizeStoreFiles(ctx context.Context, dir, name string, log logging.Logger) {
	for _, suffix := range auxSuffixes {
		sanitizeFile(ctx, filepath.Join(dir, name+suffix), log)
	}
}

func sanitizeFile(ctx context.Context, path string, log logging.Logger) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn(ctx, "cannot stat store file, deleting", "path", path, "error", err)
		removeQuietly(ctx, path, log)
		return
	}

	if info.Size() == 0 {
		return
	}
	if info.Size() < headerSize {
		log.Warn(ctx, "store file too short to verify, deleting", "path", path, "size", info.Size())
		removeQuietly(ctx, path, log)
		return
	}

	header, err := readHeader(path)
	if err != nil {
		log.Warn(ctx, "cannot read store file header, deleting", "path", path, "error", err)
		removeQuietly(ctx, path, log)
		return
	}

	if bytes.HasPrefix(header, plaintextMagic) {
		log.Info(ctx, "deleting plaintext store artifact", "path", path)
		removeQuietly(ctx, path, log)
	}
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, err
	}
	return header, nil
}

func removeQuietly(ctx context.Context, path string, log logging.Logger) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(ctx, "failed to delete store file", "path", path, "error", err)
	}
}
