package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет пользователя. Пароль к этому моменту уже захеширован.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (:id, :username, :email, :password_hash, :created_at)
	`, user)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("duplicate user on insert", "username", user.Username)
			return domain.NewError(domain.ErrConflict, "User with this email or username already exists")
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID получает пользователя по ID, без хеша пароля
func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, email, created_at FROM users WHERE id = $1`, id)
	return s.userOrNil(&user, err, "id", id)
}

// GetUserByEmailWithPassword получает пользователя по email вместе с хешем пароля
func (s *UserStorage) GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
	return s.userOrNil(&user, err, "email", email)
}

// FindUserByEmailOrUsername ищет пользователя, занявшего email или username
func (s *UserStorage) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, email, created_at FROM users WHERE email = $1 OR username = $2 LIMIT 1`, email, username)
	return s.userOrNil(&user, err, "username", username)
}

func (s *UserStorage) userOrNil(user *domain.User, err error, key string, value any) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to select user", key, value, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return user, nil
}
