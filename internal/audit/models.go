package audit

import "time"

// Event is an immutable, append-only audit log record for authentication
// activity.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor and ip capture are best-effort; do not block critical flows on
//   audit failures.
type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type" db:"type"`

	// ActorEmail/ActorUserID identify the account involved (if known).
	ActorEmail  string `json:"actor_email,omitempty" db:"actor_email"`
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// TokenID is the jti involved in token events (logout, refresh).
	TokenID string `json:"token_id,omitempty" db:"token_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeSignup        EventType = "signup"
	EventTypeLogin         EventType = "login"
	EventTypeLoginFailed   EventType = "login_failed"
	EventTypeLogout        EventType = "logout"
	EventTypeTokenRefresh  EventType = "token_refresh"
	EventTypeEmailVerified EventType = "email_verified"
)
