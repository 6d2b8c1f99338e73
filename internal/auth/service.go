// Package auth implements account signup, login, and the signed resume
// token that lets the app skip the login prompt on restart.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/logging"
	"github.com/shoaib/notekeeper/internal/users"
)

// Service authenticates against the account table in the system store.
type Service struct {
	repo   users.Repository
	logger logging.Logger
}

// NewService returns a Service over the given account repository.
func NewService(repo users.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// HashPassword returns the hex-encoded SHA-256 digest of the password.
// Unsalted on purpose: the digest never leaves the sealed system store, so
// the store key already covers it at rest.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Signup creates a new account. Uniqueness is a read-before-write check, not
// a schema constraint; two racing signups for the same name can both land,
// and the duplicate becomes unreachable because lookups resolve to the
// oldest row.
func (s *Service) Signup(ctx context.Context, username, password string) (*users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, common.ErrorUsernameTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	user := &users.User{Username: username, PasswordHash: HashPassword(password)}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.ID = id

	s.logger.Info(ctx, "user registered", "user_id", id)
	return user, nil
}

// Login verifies credentials and returns the matching account. Wrong
// username and wrong password both come back as common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*users.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	hash := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Resume resolves a saved token back to its account. Tokens minted before
// the account table was reset resolve to nothing and fail closed.
func (s *Service) Resume(ctx context.Context, token string, secret []byte) (*users.User, error) {
	userID, err := GetUserIDFromToken(token, secret)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}
