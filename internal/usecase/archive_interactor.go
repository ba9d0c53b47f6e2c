package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

const archiveContentType = "text/html; charset=utf-8"

// archiveUseCase implements ArchiveUseCase
type archiveUseCase struct {
	notes       ports.NoteStorage
	fileStorage FileStorage
	logger      *slog.Logger
}

func NewArchiveUseCase(notes ports.NoteStorage, fileStorage FileStorage, logger *slog.Logger) ArchiveUseCase {
	return &archiveUseCase{
		notes:       notes,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// ArchiveKey возвращает ключ объекта заметки в хранилище
func ArchiveKey(userID, noteID uuid.UUID) string {
	return fmt.Sprintf("notes/%s/%s.html", userID, noteID)
}

// HandleNoteEvent выкладывает актуальную версию заметки или удаляет её копию.
// Ошибка возвращается только если событие стоит повторить.
func (uc *archiveUseCase) HandleNoteEvent(ctx context.Context, event payloads.NoteEventPayload) error {
	key := ArchiveKey(event.UserID, event.NoteID)

	switch event.Type {
	case payloads.NoteCreated, payloads.NoteUpdated:
		note, err := uc.notes.GetNoteByID(ctx, event.NoteID)
		if err != nil {
			return fmt.Errorf("usecase: load note %s for archive: %w", event.NoteID, err)
		}
		if note == nil {
			// заметку успели удалить, событие об удалении придёт следом
			uc.logger.Info("archive skipped, note is gone", "note_id", event.NoteID)
			return nil
		}

		url, err := uc.fileStorage.UploadFile(ctx, key, strings.NewReader(renderNote(note)), archiveContentType)
		if err != nil {
			return fmt.Errorf("usecase: upload note %s: %w", note.ID, err)
		}
		uc.logger.Info("note archived", "note_id", note.ID, "url", url)

	case payloads.NoteDeleted:
		if err := uc.fileStorage.DeleteFile(ctx, key); err != nil {
			return fmt.Errorf("usecase: delete archived note %s: %w", event.NoteID, err)
		}
		uc.logger.Info("archived note removed", "note_id", event.NoteID)

	default:
		uc.logger.Warn("unknown note event type, dropping", "type", event.Type, "note_id", event.NoteID)
	}
	return nil
}

// renderNote собирает самостоятельный HTML-документ. Содержимое заметки уже HTML.
func renderNote(n *domain.Note) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(n.Title))
	fmt.Fprintf(&b, "<meta name=\"category\" content=\"%s\">", html.EscapeString(n.Category))
	fmt.Fprintf(&b, "<meta name=\"updated-at\" content=\"%s\">", n.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(n.Title))
	b.WriteString(n.Content)
	b.WriteString("\n</body></html>\n")
	return b.String()
}
