package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var noteColumns = []string{"id", "title", "content", "category", "color", "pinned", "user_id", "created_at", "updated_at"}

// NoteStorage реализует интерфейс ports.NoteStorage поверх sqlx
type NoteStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewNoteStorage(db *sqlx.DB, logger *slog.Logger) *NoteStorage {
	return &NoteStorage{db: db, logger: logger}
}

// SaveNote сохраняет новую заметку
func (s *NoteStorage) SaveNote(ctx context.Context, note *domain.Note) error {
	start := time.Now()

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO notes (id, title, content, category, color, pinned, user_id, created_at, updated_at)
		VALUES (:id, :title, :content, :category, :color, :pinned, :user_id, :created_at, :updated_at)
	`, note)
	if err != nil {
		s.logger.Error("failed to save note", "user_id", note.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении заметки: %w", err)
	}

	s.logger.Info("note saved successfully",
		"note_id", note.ID,
		"user_id", note.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetNoteByID получает заметку по ID
func (s *NoteStorage) GetNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	query, args, err := squirrel.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var note domain.Note
	if err := s.db.GetContext(ctx, &note, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("note not found by id", "note_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get note by id", "note_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении заметки по ID: %w", err)
	}
	return &note, nil
}

// ListNotesByUser получает все заметки пользователя: закреплённые первыми, затем самые свежие
func (s *NoteStorage) ListNotesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	start := time.Now()

	query, args, err := squirrel.Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("pinned DESC", "updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	notes := []domain.Note{}
	if err := s.db.SelectContext(ctx, &notes, query, args...); err != nil {
		s.logger.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении списка заметок: %w", err)
	}

	s.logger.Info("listed notes successfully",
		"user_id", userID,
		"count", len(notes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return notes, nil
}

// UpdateNote перезаписывает изменяемые поля заметки. Побеждает последняя запись.
func (s *NoteStorage) UpdateNote(ctx context.Context, note *domain.Note) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE notes
		SET title = :title, content = :content, category = :category, color = :color,
		    pinned = :pinned, updated_at = :updated_at
		WHERE id = :id
	`, note)
	if err != nil {
		s.logger.Error("failed to update note", "note_id", note.ID, "error", err)
		return fmt.Errorf("ошибка при обновлении заметки: %w", err)
	}
	return s.requireAffected(res, note.ID)
}

// DeleteNote удаляет заметку без возможности восстановления
func (s *NoteStorage) DeleteNote(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete note", "note_id", id, "error", err)
		return fmt.Errorf("ошибка при удалении заметки: %w", err)
	}
	return s.requireAffected(res, id)
}

func (s *NoteStorage) requireAffected(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		s.logger.Warn("note vanished before write", "note_id", id)
		return domain.NewError(domain.ErrNotFound, "Note not found")
	}
	return nil
}
