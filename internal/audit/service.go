package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// Audit is internal-only; records are not exposed to API users. Callers
// should treat audit logging as best-effort and must not fail requests on
// audit errors.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogAuth records an authentication event for an account.
func (s *Service) LogAuth(ctx context.Context, t EventType, email, userID, ip, message string) error {
	return s.Append(ctx, Event{
		Type:        t,
		ActorEmail:  email,
		ActorUserID: userID,
		IPAddress:   ip,
		Message:     message,
	})
}

// LogToken records a token lifecycle event (logout, refresh) with its jti.
func (s *Service) LogToken(ctx context.Context, t EventType, email, userID, jti, ip string) error {
	return s.Append(ctx, Event{
		Type:        t,
		ActorEmail:  email,
		ActorUserID: userID,
		TokenID:     jti,
		IPAddress:   ip,
	})
}
