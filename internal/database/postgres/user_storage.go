package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет пользователя с уже захешированным паролем
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return domain.NewError(domain.ErrConflict, "User with this email or username already exists")
		}
		s.logger.Error("failed to insert user with GORM", "error", err)
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", err)
	}

	s.logger.Info("user created successfully", "user_id", user.ID)
	return nil
}

// GetUserByID получает пользователя по ID без хеша пароля
func (s *GormUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Omit("password_hash").First(&user, "id = ?", id)
	return userOrNil(&user, result.Error)
}

// GetUserByEmailWithPassword получает пользователя по email вместе с хешем пароля
func (s *GormUserStorage) GetUserByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	return userOrNil(&user, result.Error)
}

// FindUserByEmailOrUsername ищет пользователя по email или username
func (s *GormUserStorage) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).
		Omit("password_hash").
		Where("email = ? OR username = ?", email, username).
		First(&user)
	return userOrNil(&user, result.Error)
}

// isDuplicate распознаёт нарушение уникальности. Пул открыт через lib/pq,
// поэтому TranslateError GORM срабатывает не всегда.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func userOrNil(user *domain.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя с GORM: %w", err)
	}
	return user, nil
}
