package vault

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) (*FileVault, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "vault")
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewFileVault(dir, log), dir
}

func TestGetOrCreateKey_Idempotent(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	key1, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)
	require.Len(t, key1, KeySize)

	key2, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)

	assert.Equal(t, key1, key2, "repeated calls must return byte-identical keys")
}

func TestGetOrCreateKey_SurvivesReconstruction(t *testing.T) {
	v, dir := newTestVault(t)
	ctx := context.Background()

	key1, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)

	// A fresh FileVault over the same directory models a process restart.
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	v2 := NewFileVault(dir, log)
	key2, err := v2.GetOrCreateKey(ctx)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
}

func TestGetOrCreateKey_FilePermissions(t *testing.T) {
	v, dir := newTestVault(t)
	_, err := v.GetOrCreateKey(context.Background())
	require.NoError(t, err)

	for _, name := range []string{"seed", "salt", "key.wrapped"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), name)
	}
}

func TestGetOrCreateKey_CorruptWrappedKey(t *testing.T) {
	v, dir := newTestVault(t)
	ctx := context.Background()

	_, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.wrapped"), []byte("garbage-envelope"), 0o600))

	_, err = v.GetOrCreateKey(ctx)
	assert.ErrorIs(t, err, common.ErrVaultUnavailable)
}

func TestGetOrCreateKey_MissingSeedIsFatal(t *testing.T) {
	v, dir := newTestVault(t)
	ctx := context.Background()

	_, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "seed")))

	_, err = v.GetOrCreateKey(ctx)
	assert.ErrorIs(t, err, common.ErrVaultUnavailable)
}

func TestGetOrCreateKey_PartialStateRefusesRegeneration(t *testing.T) {
	v, dir := newTestVault(t)
	ctx := context.Background()

	_, err := v.GetOrCreateKey(ctx)
	require.NoError(t, err)

	// Wrapped key lost but seed/salt remain: regenerating here would orphan
	// existing sealed stores, so the vault must refuse.
	require.NoError(t, os.Remove(filepath.Join(dir, "key.wrapped")))

	_, err = v.GetOrCreateKey(ctx)
	assert.ErrorIs(t, err, common.ErrVaultUnavailable)
}

func TestNewPlatformVault_ReturnsVault(t *testing.T) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	v := NewPlatformVault(t.TempDir(), log)
	require.NotNil(t, v)

	key, err := v.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}
