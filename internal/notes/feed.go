package notes

import "context"

// Feed turns the note collection into a continuously-updated observable: a
// subscriber receives a snapshot immediately and a fresh one after every
// change notification. Consistency is eventual; a snapshot may trail the
// triggering insert by one notification tick.
//
// A Feed supports one subscriber at a time, matching the single observing
// screen in the app. The subscription tears down when its context is
// cancelled and can be restarted with a new Subscribe call.
type Feed struct {
	notes   GetNotesUseCase
	changed chan struct{}
}

// NewFeed returns a Feed reading snapshots through the given use case.
func NewFeed(notes GetNotesUseCase) *Feed {
	return &Feed{notes: notes, changed: make(chan struct{}, 1)}
}

// Notify signals that the collection changed. Safe to call with no active
// subscriber; coalesces bursts into a single refresh.
func (f *Feed) Notify() {
	select {
	case f.changed <- struct{}{}:
	default:
	}
}

// Subscribe starts the feed. The returned channel yields the current
// snapshot first, then a new snapshot after each Notify, and closes when ctx
// is cancelled.
func (f *Feed) Subscribe(ctx context.Context) <-chan []Note {
	out := make(chan []Note, 1)

	go func() {
		defer close(out)

		for {
			snapshot, err := f.notes.Execute(ctx)
			if err != nil {
				// The reported repository already degraded reads; any error
				// left means the context is gone.
				return
			}

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}

			select {
			case <-f.changed:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
