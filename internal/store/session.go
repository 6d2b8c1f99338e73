package store

import (
	"context"

	"github.com/shoaib/notekeeper/internal/logging"
)

// Session owns the currently open per-user store. It replaces a process-wide
// singleton with an explicit object whose lifetime follows the authenticated
// user: Get caches the handle while the user stays the same, switches users
// by closing the old handle before opening the new one (never both open at
// once), and Clear drops everything on logout.
//
// Session is not safe for concurrent callers; the app drives it from a
// single goroutine.
type Session struct {
	factory *Factory
	log     logging.Logger

	handle *Handle
	userID int64
}

// NewSession returns an empty Session backed by the given factory.
func NewSession(f *Factory, log logging.Logger) *Session {
	return &Session{factory: f, log: log.With("component", "session")}
}

// Get returns the store handle for userID, reusing the cached handle when it
// matches and is still open. Switching users closes the previous store
// first; a close failure is logged and reported through the error return
// only if the subsequent open also fails.
func (s *Session) Get(ctx context.Context, userID int64) (*Handle, error) {
	if s.handle != nil && !s.handle.Closed() && s.userID == userID {
		return s.handle, nil
	}

	if s.handle != nil && !s.handle.Closed() {
		if err := s.handle.Close(ctx); err != nil {
			s.log.Warn(ctx, "error closing store on user switch", "error", err)
		}
	}
	s.handle = nil

	h, err := s.factory.OpenStoreForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.handle = h
	s.userID = userID
	return h, nil
}

// Current returns the cached handle, or nil when no store is open.
func (s *Session) Current() *Handle {
	if s.handle == nil || s.handle.Closed() {
		return nil
	}
	return s.handle
}

// Clear unconditionally closes and drops the cached handle. Used on logout.
func (s *Session) Clear(ctx context.Context) error {
	if s.handle == nil {
		return nil
	}
	err := s.handle.Close(ctx)
	s.handle = nil
	s.userID = 0
	return err
}
