package books

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("books: invalid input")

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	if id == "" {
		return Book{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := validateInput(in); err != nil {
		return Book{}, err
	}

	now := s.clock().UTC()
	b := Book{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		Publisher:     strings.TrimSpace(in.Publisher),
		PublishedDate: in.PublishedDate,
		PageCount:     in.PageCount,
		Language:      strings.TrimSpace(in.Language),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Book, error) {
	if err := validateInput(in); err != nil {
		return Book{}, err
	}

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}

	b.Title = strings.TrimSpace(in.Title)
	b.Author = strings.TrimSpace(in.Author)
	b.Publisher = strings.TrimSpace(in.Publisher)
	b.PublishedDate = in.PublishedDate
	b.PageCount = in.PageCount
	b.Language = strings.TrimSpace(in.Language)
	b.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, b); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validateInput(in CreateInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" {
		return ErrInvalidInput
	}
	if in.PageCount < 0 {
		return ErrInvalidInput
	}
	return nil
}
