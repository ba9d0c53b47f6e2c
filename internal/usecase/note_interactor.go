package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

const msgNoteNotFound = "Note not found"

// noteUseCase implements NoteUseCase
type noteUseCase struct {
	notes     ports.NoteStorage
	publisher ports.NoteEventPublisher
	logger    *slog.Logger
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
// publisher может быть nil, тогда события не публикуются.
func NewNoteUseCase(notes ports.NoteStorage, publisher ports.NoteEventPublisher, logger *slog.Logger) NoteUseCase {
	return &noteUseCase{
		notes:     notes,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *noteUseCase) ListNotes(ctx context.Context, userID uuid.UUID) ([]domain.Note, error) {
	notes, err := uc.notes.ListNotesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

func (uc *noteUseCase) CreateNote(ctx context.Context, userID uuid.UUID, in domain.NoteInput) (*domain.Note, error) {
	now := time.Now().UTC()
	note := &domain.Note{
		ID:        uuid.New(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Color:     in.Color,
		Pinned:    in.Pinned,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	note.Normalize()

	if err := domain.Validate(note); err != nil {
		return nil, err
	}

	if err := uc.notes.SaveNote(ctx, note); err != nil {
		return nil, fmt.Errorf("usecase: save note: %w", err)
	}

	uc.publish(ctx, payloads.NoteCreated, note)
	return note, nil
}

func (uc *noteUseCase) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	return uc.ownedNote(ctx, userID, noteID, "access")
}

func (uc *noteUseCase) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error) {
	note, err := uc.ownedNote(ctx, userID, noteID, "update")
	if err != nil {
		return nil, err
	}

	upd.Apply(note)
	note.Normalize()
	if err := domain.Validate(note); err != nil {
		return nil, err
	}

	note.UpdatedAt = time.Now().UTC()
	if err := uc.notes.UpdateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("usecase: update note: %w", err)
	}

	uc.publish(ctx, payloads.NoteUpdated, note)
	return note, nil
}

func (uc *noteUseCase) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	note, err := uc.ownedNote(ctx, userID, noteID, "delete")
	if err != nil {
		return err
	}

	if err := uc.notes.DeleteNote(ctx, note.ID); err != nil {
		return fmt.Errorf("usecase: delete note: %w", err)
	}

	uc.publish(ctx, payloads.NoteDeleted, note)
	return nil
}

// ownedNote загружает заметку и проверяет владельца.
// Чужая заметка даёт 403 без подробностей о ней самой.
func (uc *noteUseCase) ownedNote(ctx context.Context, userID, noteID uuid.UUID, action string) (*domain.Note, error) {
	note, err := uc.notes.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("usecase: get note: %w", err)
	}
	if note == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgNoteNotFound)
	}
	if !note.OwnedBy(userID) {
		uc.logger.Warn("note access denied", "note_id", noteID, "user_id", userID, "action", action)
		return nil, domain.NewError(domain.ErrForbidden, "Not authorized to %s this note", action)
	}
	return note, nil
}

// publish отправляет событие в очередь. Ошибка публикации не ломает запрос.
func (uc *noteUseCase) publish(ctx context.Context, eventType string, note *domain.Note) {
	if uc.publisher == nil {
		return
	}
	event := payloads.NoteEventPayload{
		Type:       eventType,
		NoteID:     note.ID,
		UserID:     note.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishNoteEvent(ctx, event); err != nil {
		uc.logger.Warn("failed to publish note event", "type", eventType, "note_id", note.ID, "error", err)
	}
}
