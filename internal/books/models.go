package books

import "time"

type Book struct {
	ID            string    `json:"uid" db:"id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	Publisher     string    `json:"publisher" db:"publisher"`
	PublishedDate string    `json:"published_date" db:"published_date"`
	PageCount     int       `json:"page_count" db:"page_count"`
	Language      string    `json:"language" db:"language"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInput carries caller-supplied book fields; identifiers and
// timestamps are assigned by the service.
type CreateInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
}

type UpdateInput = CreateInput
