package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/cryptox"
	"github.com/shoaib/notekeeper/internal/logging"
)

const (
	seedFileName    = "seed"
	saltFileName    = "salt"
	wrappedFileName = "key.wrapped"

	seedSize = 32
	saltSize = 16
)

// FileVault stores the key in a private directory, wrapped with AES-GCM
// under a wrap key derived (argon2id) from a random on-disk seed and salt.
// The layout mirrors the keystore-wrapped scheme the mobile platforms use:
// the store key never touches disk in the clear, only its envelope does.
type FileVault struct {
	dir string
	log logging.Logger
}

// NewFileVault returns a FileVault rooted at dir. The directory is created
// on first key generation, not here.
func NewFileVault(dir string, log logging.Logger) *FileVault {
	return &FileVault{dir: dir, log: log.With("component", "vault")}
}

// GetOrCreateKey returns the installation's store key, generating and
// persisting it on first call. Partially-present or undecryptable vault
// state yields common.ErrVaultUnavailable; the key is never regenerated
// over existing material.
func (v *FileVault) GetOrCreateKey(ctx context.Context) ([]byte, error) {
	wrapped, err := os.ReadFile(filepath.Join(v.dir, wrappedFileName))
	switch {
	case err == nil:
		return v.unwrap(ctx, wrapped)
	case errors.Is(err, fs.ErrNotExist):
		if v.hasPartialState() {
			v.log.Error(ctx, "vault has partial state, refusing to regenerate")
			return nil, fmt.Errorf("wrapped key missing but seed/salt present: %w", common.ErrVaultUnavailable)
		}
		return v.create(ctx)
	default:
		return nil, fmt.Errorf("read wrapped key: %w: %w", err, common.ErrVaultUnavailable)
	}
}

func (v *FileVault) unwrap(ctx context.Context, wrapped []byte) ([]byte, error) {
	wrapKey, err := v.loadWrapKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, common.ErrVaultUnavailable)
	}

	key, err := cryptox.Open(wrapped, wrapKey)
	if err != nil {
		v.log.Error(ctx, "failed to unwrap store key", "error", err)
		return nil, fmt.Errorf("unwrap store key: %w", common.ErrVaultUnavailable)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("unexpected key length %d: %w", len(key), common.ErrVaultUnavailable)
	}

	v.log.Debug(ctx, "store key unwrapped")
	return key, nil
}

func (v *FileVault) create(ctx context.Context) ([]byte, error) {
	if err := os.MkdirAll(v.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}

	seed := common.GenerateRandByteArray(seedSize)
	salt := common.GenerateRandByteArray(saltSize)
	key := common.GenerateRandByteArray(KeySize)

	wrapped, err := cryptox.Seal(key, cryptox.DeriveWrapKey(seed, salt))
	if err != nil {
		return nil, fmt.Errorf("wrap store key: %w", err)
	}

	// Write the wrapped key last: its presence marks the vault as committed,
	// duplicating the partial-state check above.
	for _, f := range []struct {
		name string
		data []byte
	}{
		{seedFileName, seed},
		{saltFileName, salt},
		{wrappedFileName, wrapped},
	} {
		if err := os.WriteFile(filepath.Join(v.dir, f.name), f.data, 0o600); err != nil {
			return nil, fmt.Errorf("write vault file %s: %w", f.name, err)
		}
	}

	v.log.Info(ctx, "generated new store key", "dir", v.dir)
	return key, nil
}

func (v *FileVault) loadWrapKey() ([]byte, error) {
	seed, err := os.ReadFile(filepath.Join(v.dir, seedFileName))
	if err != nil {
		return nil, fmt.Errorf("read vault seed: %w", err)
	}
	salt, err := os.ReadFile(filepath.Join(v.dir, saltFileName))
	if err != nil {
		return nil, fmt.Errorf("read vault salt: %w", err)
	}
	return cryptox.DeriveWrapKey(seed, salt), nil
}

func (v *FileVault) hasPartialState() bool {
	for _, name := range []string{seedFileName, saltFileName} {
		if _, err := os.Stat(filepath.Join(v.dir, name)); err == nil {
			return true
		}
	}
	return false
}
