// Package vault manages the symmetric store-encryption key. One 32-byte key
// exists per installation; it is generated lazily on first access, persisted
// wrapped at rest, and never rotated or regenerated. Losing the key makes
// every sealed store permanently unreadable, so a vault that exists but
// cannot be read reports common.ErrVaultUnavailable instead of creating a
// fresh key.
package vault

import (
	"context"
	"runtime"

	"github.com/shoaib/notekeeper/internal/logging"
)

// KeySize is the length of the store-encryption key in bytes.
const KeySize = 32

// Vault provides the installation's store-encryption key.
//
// Contract:
//   - The first call generates and persists the key.
//   - Every subsequent call returns byte-identical key material.
//   - A vault that is present but unreadable or corrupted fails with
//     common.ErrVaultUnavailable; implementations must never regenerate.
type Vault interface {
	GetOrCreateKey(ctx context.Context) ([]byte, error)
}

// NewPlatformVault selects the Vault implementation for the current
// platform. Hardware-backed backends (Keychain, TPM) would hook in here;
// every platform currently shares the file-backed vault rooted at dir.
func NewPlatformVault(dir string, log logging.Logger) Vault {
	switch runtime.GOOS {
	case "darwin", "windows":
		// No native keystore binding yet; fall through to the file vault.
		return NewFileVault(dir, log)
	default:
		return NewFileVault(dir, log)
	}
}
