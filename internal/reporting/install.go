package reporting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const installIDFileName = "installation_id"

// InstallationID returns the stable per-installation identifier used as the
// analytics identity, creating and persisting a fresh one under dir on first
// call. Unlike the store key, this value is not secret and may be freely
// regenerated if lost.
func InstallationID(dir string) (string, error) {
	path := filepath.Join(dir, installIDFileName)

	data, err := os.ReadFile(path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, parseErr := uuid.Parse(id); parseErr == nil {
			return id, nil
		}
		// Corrupt contents: fall through and mint a new one.
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read installation id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write installation id: %w", err)
	}
	return id, nil
}
