package usecase

import (
	"context"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
)

// PasswordHasher определяет интерфейс хеширования паролей (bcrypt)
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Compare возвращает ошибку, если пароль не совпадает с хешем
	Compare(ctx context.Context, hash, password string) error
	// CompareDummy выравнивает время ответа, когда пользователь не найден
	CompareDummy(ctx context.Context, password string) error
}

// TokenIssuer выпускает и проверяет сессионные токены
type TokenIssuer interface {
	Generate(userID uuid.UUID) (string, time.Time, error)
	Parse(token string) (uuid.UUID, error)
}

// Session — выпущенный токен и момент его истечения
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthUseCase определяет интерфейс регистрации, входа и проверки сессии
type AuthUseCase interface {
	// Register создаёт пользователя и сразу выпускает для него сессию
	Register(ctx context.Context, in domain.RegisterInput) (*domain.User, *Session, error)

	// Login проверяет email и пароль. Причина отказа наружу не раскрывается.
	Login(ctx context.Context, in domain.LoginInput) (*domain.User, *Session, error)

	// CurrentUser проверяет токен и загружает его владельца
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
