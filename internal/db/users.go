package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/internship-board/internal/types"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, created_at`

func scanUser(row rowScanner) (*types.User, error) {
	var u types.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user, assigning its ID and creation time.
func (db *DB) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	created, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		uuid.NewString(), user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
	))
	if err != nil {
		if dup := duplicateUserError(err); dup != err {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id string) (*types.User, error) {
	return db.getUser(ctx, `WHERE id = $1`, id)
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return db.getUser(ctx, `WHERE username = $1`, username)
}

// GetUserByEmail retrieves a user by email, ignoring case
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	return db.getUser(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg string) (*types.User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
