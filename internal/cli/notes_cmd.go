package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shoaib/notekeeper/internal/notes"
)

func (a *App) requireLogin() bool {
	if a.notes == nil {
		fmt.Fprintln(a.out, "Log in first.")
		return false
	}
	return true
}

// List prints every note, newest first.
func (a *App) List(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	items, err := a.notes.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing notes", "error", err)
		return err
	}

	a.printNotes(items)
	return nil
}

func (a *App) printNotes(items []notes.Note) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No notes yet.")
		return
	}
	for _, n := range items {
		created := time.UnixMilli(n.CreatedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(a.out, "[%d] %s (%s)\n    %s\n", n.ID, n.Title, created, n.Description)
	}
}

// AddNote prompts for a title and body and saves a new note.
func (a *App) AddNote(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	return a.editNote(ctx, 0)
}

// EditNote prompts for a note id, then replaces that note's content.
func (a *App) EditNote(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	raw, err := GetSimpleText(a.reader, "Enter note id", a.out)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Not a valid note id.")
		return nil
	}

	return a.editNote(ctx, id)
}

func (a *App) editNote(ctx context.Context, id int64) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	body, err := GetMultiline(a.reader, "Enter text", a.out)
	if err != nil {
		return err
	}

	saved, err := a.notes.AddOrUpdate(ctx, title, body, id)
	if err != nil {
		if errors.Is(err, notes.ErrEmptyNote) {
			fmt.Fprintln(a.out, "Title and text must not be empty.")
			return nil
		}
		fmt.Fprintln(a.out, "Could not save the note.")
		a.log.Error(ctx, "error saving note", "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Saved note %d.\n", saved)
	return nil
}

// Watch streams the live note feed until the user presses Enter.
func (a *App) Watch(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if !a.flags.Bool("live_feed", true) {
		fmt.Fprintln(a.out, "The live feed is disabled.")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := a.notes.Watch(watchCtx)
	go func() {
		for snapshot := range ch {
			a.printNotes(snapshot)
		}
	}()

	fmt.Fprintln(a.out, "Watching for changes; press Enter to stop.")
	_, _ = a.reader.ReadString('\n')
	return nil
}
