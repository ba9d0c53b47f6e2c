package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// NoteUseCase определяет интерфейс для бизнес-логики работы с заметками.
// Каждая операция над одной заметкой проверяет, что её выполняет владелец.
type NoteUseCase interface {
	// ListNotes возвращает заметки пользователя: закреплённые первыми, затем самые свежие
	ListNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error)

	// CreateNote создаёт заметку, владелец всегда берётся из сессии
	CreateNote(ctx context.Context, userID uuid.UUID, in domain.NoteInput) (*domain.Note, error)

	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)

	// UpdateNote применяет частичное обновление и заново валидирует заметку
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error)

	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

// FileStorage определяет интерфейс для работы с объектным хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

// ArchiveUseCase зеркалирует заметки в объектное хранилище по событиям из очереди
type ArchiveUseCase interface {
	HandleNoteEvent(ctx context.Context, event payloads.NoteEventPayload) error
}
