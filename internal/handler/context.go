package handler

import (
	"context"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// WithCurrentUser кладёт аутентифицированного пользователя в контекст
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUserFromContext достаёт пользователя, положенного RequireAuth
func CurrentUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*domain.User)
	return user, ok && user != nil
}

// UserIDFromContext возвращает только идентификатор текущего пользователя
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	user, ok := CurrentUserFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
