package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shoaib/notekeeper/internal/reporting"
)

// ErrEmptyNote rejects saves where the title or body is blank.
var ErrEmptyNote = errors.New("note title and description must not be blank")

// Flusher persists pending writes durably. The store handle satisfies it.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service drives the notes feature for one open store: listing, the live
// feed, and the save operation the editor calls. It decides new-versus-
// update purely from whether an identifier was supplied.
type Service struct {
	get     GetNotesUseCase
	add     AddNoteUseCase
	feed    *Feed
	flusher Flusher
	errors  reporting.ErrorSink
	events  reporting.EventSink

	now func() int64 // test seam
}

// NewService wires a Service over the given repository and sinks. flusher
// may be nil when durability is managed elsewhere (tests).
func NewService(repo Repository, flusher Flusher, errors reporting.ErrorSink, events reporting.EventSink) *Service {
	get := NewGetNotesUseCase(repo)
	return &Service{
		get:     get,
		add:     NewAddNoteUseCase(repo),
		feed:    NewFeed(get),
		flusher: flusher,
		errors:  errors,
		events:  events,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// List returns the current snapshot, newest first.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.get.Execute(ctx)
}

// Watch subscribes to the live note collection.
func (s *Service) Watch(ctx context.Context) <-chan []Note {
	return s.feed.Subscribe(ctx)
}

// AddOrUpdate saves a note. id == 0 creates a new note; id > 0 replaces the
// stored note whole. Saving stamps a fresh creation time either way, so an
// updated note moves to the top of the list. Whitespace is trimmed; blank
// input is rejected with ErrEmptyNote before touching the store.
func (s *Service) AddOrUpdate(ctx context.Context, title, description string, id int64) (int64, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return 0, ErrEmptyNote
	}

	note := &Note{ID: id, Title: title, Description: description, CreatedAt: s.now()}

	assigned, err := s.add.Execute(ctx, note)
	if err != nil {
		return 0, err
	}

	event := "note_created"
	if id > 0 {
		event = "note_updated"
	}
	s.events.Event(ctx, event, map[string]any{"note_id": assigned})

	if s.flusher != nil {
		// The row is committed; a failed reseal only delays durability until
		// the next flush, so it is reported rather than surfaced.
		if err := s.flusher.Flush(ctx); err != nil {
			s.errors.Report(ctx, err)
		}
	}

	s.feed.Notify()
	return assigned, nil
}
