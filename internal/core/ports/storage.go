package ports

import (
	"context"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем учётных записей.
// Пароль приходит в хранилище уже захешированным.
type UserStorage interface {
	// CreateUser сохраняет нового пользователя, дубликат username/email возвращает domain.ErrConflict
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID возвращает пользователя без хеша пароля, nil если не найден
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetUserByEmailWithPassword возвращает пользователя вместе с хешем пароля, используется только при входе
	GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)

	// FindUserByEmailOrUsername ищет пользователя с таким email или username
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
}

// NoteStorage определяет методы для взаимодействия с хранилищем заметок
type NoteStorage interface {
	SaveNote(ctx context.Context, note *domain.Note) error
	// GetNoteByID возвращает nil, nil если заметки нет
	GetNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	// ListNotesByUser возвращает заметки владельца: сначала закреплённые, затем по убыванию updated_at
	ListNotesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error)
	UpdateNote(ctx context.Context, note *domain.Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
}
