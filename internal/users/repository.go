package users

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrNotFound = errors.New("users: not found")

	// ErrEmailTaken reports that the email column's unique constraint
	// rejected an insert.
	ErrEmailTaken = errors.New("users: email already registered")
)

// Repository is the persistence contract for accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) error
	MarkVerified(ctx context.Context, email string) error
}

// NOTE: PGRepo assumes a users table:
//
//	id UUID PRIMARY KEY,
//	username TEXT, first_name TEXT, last_name TEXT,
//	email TEXT UNIQUE NOT NULL,
//	password_hash TEXT NOT NULL,
//	role TEXT NOT NULL DEFAULT 'user',
//	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
//	created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ

type PGRepo struct {
	db *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const q = `
SELECT id, username, first_name, last_name, email, password_hash, role, is_verified, created_at, updated_at
FROM users
WHERE email = $1
`
	var u User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PGRepo) Create(ctx context.Context, u User) error {
	const q = `
INSERT INTO users (id, username, first_name, last_name, email, password_hash, role, is_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (email) DO NOTHING
`
	res, err := r.db.ExecContext(ctx, q,
		u.ID,
		u.Username,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsVerified,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmailTaken
	}
	return nil
}

func (r *PGRepo) MarkVerified(ctx context.Context, email string) error {
	const q = `
UPDATE users
SET is_verified = TRUE, updated_at = NOW()
WHERE email = $1
`
	res, err := r.db.ExecContext(ctx, q, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
