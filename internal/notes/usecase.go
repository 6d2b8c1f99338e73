package notes

import "context"

// The use cases are deliberate one-line pass-throughs: they keep the service
// layer decoupled from the repository's concrete shape.

// GetNotesUseCase lists all notes.
type GetNotesUseCase struct {
	repo Repository
}

func NewGetNotesUseCase(repo Repository) GetNotesUseCase {
	return GetNotesUseCase{repo: repo}
}

func (u GetNotesUseCase) Execute(ctx context.Context) ([]Note, error) {
	return u.repo.ListAll(ctx)
}

// AddNoteUseCase saves a note and returns its assigned identifier.
type AddNoteUseCase struct {
	repo Repository
}

func NewAddNoteUseCase(repo Repository) AddNoteUseCase {
	return AddNoteUseCase{repo: repo}
}

func (u AddNoteUseCase) Execute(ctx context.Context, n *Note) (int64, error) {
	return u.repo.Insert(ctx, n)
}
