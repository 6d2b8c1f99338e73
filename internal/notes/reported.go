package notes

import (
	"context"
	"fmt"

	"github.com/shoaib/notekeeper/internal/reporting"
)

// ReportedRepository wraps a Repository with the error-reporting policy:
// read failures are reported to the error sink and degrade to an empty
// result (the user sees "no notes" instead of a crash); write failures are
// reported and then propagated, because the caller owes the user a visible
// save error.
type ReportedRepository struct {
	inner  Repository
	errors reporting.ErrorSink
}

// NewReportedRepository wraps inner with reporting through errors.
func NewReportedRepository(inner Repository, errors reporting.ErrorSink) *ReportedRepository {
	return &ReportedRepository{inner: inner, errors: errors}
}

func (r *ReportedRepository) ListAll(ctx context.Context) ([]Note, error) {
	result, err := r.inner.ListAll(ctx)
	if err != nil {
		r.errors.Report(ctx, err)
		r.errors.Log(ctx, fmt.Sprintf("error fetching notes: %v", err))
		return []Note{}, nil
	}
	return result, nil
}

func (r *ReportedRepository) Insert(ctx context.Context, n *Note) (int64, error) {
	id, err := r.inner.Insert(ctx, n)
	if err != nil {
		r.errors.Report(ctx, err)
		r.errors.Log(ctx, fmt.Sprintf("error adding note: %v, note id: %d", err, n.ID))
		return 0, err
	}
	return id, nil
}
