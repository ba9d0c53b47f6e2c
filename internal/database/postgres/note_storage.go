package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNoteStorage реализует интерфейс ports.NoteStorage с использованием GORM
type GormNoteStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormNoteStorage(db *gorm.DB, logger *slog.Logger) *GormNoteStorage {
	return &GormNoteStorage{db: db, logger: logger}
}

// SaveNote сохраняет заметку с помощью GORM
func (s *GormNoteStorage) SaveNote(ctx context.Context, note *domain.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		s.logger.Error("failed to save note with GORM", "user_id", note.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении заметки с помощью GORM: %w", err)
	}
	return nil
}

// GetNoteByID получает заметку по ID с помощью GORM
func (s *GormNoteStorage) GetNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	result := s.db.WithContext(ctx).First(&note, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении заметки по ID с помощью GORM: %w", result.Error)
	}
	return &note, nil
}

// ListNotesByUser получает заметки пользователя с помощью GORM
func (s *GormNoteStorage) ListNotesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	notes := []domain.Note{}
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pinned DESC").
		Order("updated_at DESC").
		Find(&notes)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при получении заметок из БД с помощью GORM: %w", result.Error)
	}
	return notes, nil
}

// UpdateNote обновляет изменяемые поля заметки.
// Select нужен, чтобы GORM записал и нулевые значения (pinned = false).
func (s *GormNoteStorage) UpdateNote(ctx context.Context, note *domain.Note) error {
	result := s.db.WithContext(ctx).
		Model(note).
		Select("title", "content", "category", "color", "pinned", "updated_at").
		Updates(note)
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении заметки с помощью GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewError(domain.ErrNotFound, "Note not found")
	}
	return nil
}

// DeleteNote удаляет заметку с помощью GORM
func (s *GormNoteStorage) DeleteNote(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&domain.Note{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("ошибка при удалении заметки с помощью GORM: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewError(domain.ErrNotFound, "Note not found")
	}
	return nil
}
