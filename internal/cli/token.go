package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName holds the signed resume token between runs. The token only
// names an account id; the store key never leaves the vault.
const tokenFileName = "session.token"

func tokenPath(dir string) string {
	return filepath.Join(dir, tokenFileName)
}

func saveToken(dir, token string) error {
	return os.WriteFile(tokenPath(dir), []byte(token), 0o600)
}

func loadToken(dir string) (string, error) {
	data, err := os.ReadFile(tokenPath(dir))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func clearToken(dir string) {
	_ = os.Remove(tokenPath(dir))
}
