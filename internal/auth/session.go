package auth

import (
	"context"

	"github.com/idalopban/ComVida/internal/repo"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the authenticated practitioner carried on the request context.
type Session struct {
	UserID int
	Login  string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == repo.RoleAdmin
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
