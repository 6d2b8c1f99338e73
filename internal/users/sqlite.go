package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shoaib/notekeeper/internal/common"
	"github.com/shoaib/notekeeper/internal/dbx"
)

// SQLiteRepository implements Repository over the system store.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, user *User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`insert into users (username, password_hash) values (?, ?)`,
		user.Username, user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	// Oldest row wins when duplicates slipped past signup.
	query := `select id, username, password_hash from users where username = ? order by id asc limit 1`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `select id, username, password_hash from users where id = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return user, nil
}
