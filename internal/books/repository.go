package books

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("books: not found")

// Repository is the persistence contract for the catalog.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, b Book) error
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id string) error
}

// NOTE: PGRepo assumes a books table:
//
//	id UUID PRIMARY KEY,
//	title TEXT, author TEXT, publisher TEXT,
//	published_date DATE, page_count INT, language TEXT,
//	created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ

type PGRepo struct {
	db *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context) ([]Book, error) {
	const q = `
SELECT id, title, author, publisher, published_date, page_count, language, created_at, updated_at
FROM books
ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Publisher,
			&b.PublishedDate,
			&b.PageCount,
			&b.Language,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Book, error) {
	const q = `
SELECT id, title, author, publisher, published_date, page_count, language, created_at, updated_at
FROM books
WHERE id = $1
`
	var b Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Publisher,
		&b.PublishedDate,
		&b.PageCount,
		&b.Language,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PGRepo) Create(ctx context.Context, b Book) error {
	const q = `
INSERT INTO books (id, title, author, publisher, published_date, page_count, language, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.ExecContext(ctx, q,
		b.ID,
		b.Title,
		b.Author,
		b.Publisher,
		b.PublishedDate,
		b.PageCount,
		b.Language,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, b Book) error {
	const q = `
UPDATE books
SET title = $2, author = $3, publisher = $4, published_date = $5, page_count = $6, language = $7, updated_at = $8
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		b.ID,
		b.Title,
		b.Author,
		b.Publisher,
		b.PublishedDate,
		b.PageCount,
		b.Language,
		b.UpdatedAt,
	)
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

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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
