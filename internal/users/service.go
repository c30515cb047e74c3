package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookly/internal/auth"
	"bookly/internal/rbac"

	"github.com/google/uuid"
)

// ErrInvalidCredentials covers both unknown email and wrong password; the
// two are indistinguishable to callers on purpose.
var ErrInvalidCredentials = errors.New("users: invalid email or password")

type RegisterInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Register creates an unverified account with the default role. A duplicate
// email yields ErrEmailTaken as a tagged result for the boundary layer.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Username) == "" {
		return User{}, errors.New("users: username and email are required")
	}
	if len(in.Password) < 8 {
		return User{}, errors.New("users: password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.clock().UTC()
	u := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         rbac.RoleUser,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate verifies email+password and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// MarkVerified flips the account's verification flag after a confirmed
// email link.
func (s *Service) MarkVerified(ctx context.Context, email string) error {
	return s.repo.MarkVerified(ctx, normalizeEmail(email))
}

// Identity returns the authorization-relevant slice of the account record.
func (s *Service) Identity(ctx context.Context, email string) (rbac.Identity, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return rbac.Identity{}, err
	}
	return rbac.Identity{Role: u.Role, Verified: u.IsVerified}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
