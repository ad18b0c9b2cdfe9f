// internal/common/auth/session.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pragati-dashboard/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// Role tags mirror the backend's role claims.
const (
	RoleStudent    = "STUDENT"
	RoleTeacher    = "TEACHER"
	RolePrincipal  = "PRINCIPAL"
	RoleGovernment = "GOVERNMENT"
)

var ErrNoSession = errors.New("no valid session")

// Session is the credential context set at login and injected into every
// component. It replaces ambient per-page credential reads: one value,
// created at login, invalidated at logout or on a 401.
type Session struct {
	Token       string    `json:"token"`
	Role        string    `json:"role"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	SchoolID    string    `json:"schoolId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IsExpired checks if the session credential has expired.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// LoginPath returns the role-specific login entry point used when an
// operation fails with an auth error.
func (s *Session) LoginPath() string {
	return LoginPathForRole(s.Role)
}

func LoginPathForRole(role string) string {
	switch role {
	case RoleStudent:
		return "/login/student"
	case RoleTeacher:
		return "/login/teacher"
	case RolePrincipal:
		return "/login/principal"
	case RoleGovernment:
		return "/login/government"
	default:
		return "/login"
	}
}

// Store persists sessions in Redis, one per role slot. Save is called at
// login, Load at the start of each page lifecycle, Clear at logout, and
// Invalidate whenever the backend rejects the credential.
type Store struct {
	redis *database.RedisClient
}

func NewStore(rdb *database.RedisClient) *Store {
	return &Store{redis: rdb}
}

func sessionKey(role string) string {
	return fmt.Sprintf("session:%s", role)
}

// Save persists the session until its expiry (or indefinitely when the
// token carries no expiry, matching the original credential store).
func (s *Store) Save(ctx context.Context, session *Session) error {
	if session.Token == "" {
		return fmt.Errorf("session token is required")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("session already expired")
		}
	}

	return s.redis.Set(ctx, sessionKey(session.Role), string(data), ttl)
}

// Load reads the credential for a role. Missing or expired sessions return
// ErrNoSession; the caller redirects to the role's login entry point.
func (s *Store) Load(ctx context.Context, role string) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(role))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if session.IsExpired() {
		_ = s.redis.Del(ctx, sessionKey(role))
		return nil, ErrNoSession
	}

	return &session, nil
}

// Clear removes the credential at logout.
func (s *Store) Clear(ctx context.Context, role string) error {
	return s.redis.Del(ctx, sessionKey(role))
}

// Invalidate drops a credential the backend has rejected.
func (s *Store) Invalidate(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	return s.Clear(ctx, session.Role)
}
