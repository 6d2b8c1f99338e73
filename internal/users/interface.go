package users

import "context"

// Repository describes account persistence in the system store.
//
// Usernames carry no uniqueness constraint in the schema; GetByUsername
// resolves duplicates by returning the earliest row, so a concurrent
// double-signup still settles on one canonical account.
type Repository interface {
	// Insert saves a new account and returns its assigned identifier.
	Insert(ctx context.Context, user *User) (int64, error)

	// GetByUsername returns the account with the given username, the oldest
	// row when several exist, or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns the account with the given identifier or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*User, error)
}
