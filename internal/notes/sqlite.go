package notes

import (
	"context"
	"fmt"

	"github.com/shoaib/notekeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ListAll lists every note, newest first; equal timestamps keep insertion
// order via the id tiebreak.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]Note, error) {
	query := `select id, title, description, created_at from notes order by created_at desc, id asc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []Note
	for rows.Next() {
		var item Note
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert upserts a note. A draft (ID == 0) gets a store-assigned id, which
// is returned; an existing id replaces the row whole.
func (r *SQLiteRepository) Insert(ctx context.Context, n *Note) (int64, error) {
	if n.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`insert into notes (title, description, created_at) values (?, ?, ?)`,
			n.Title, n.Description, n.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert note: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get inserted id: %w", err)
		}
		return id, nil
	}

	query := `insert into notes (id, title, description, created_at)
			values (?, ?, ?, ?)
			on conflict(id) do update set title = excluded.title,
				description = excluded.description,
				created_at = excluded.created_at
	`
	if _, err := r.db.ExecContext(ctx, query, n.ID, n.Title, n.Description, n.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to upsert note: %w", err)
	}
	return n.ID, nil
}
