package payloads

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий о заметках
const (
	NoteCreated = "note.created"
	NoteUpdated = "note.updated"
	NoteDeleted = "note.deleted"
)

// NoteEventPayload представляет событие об изменении заметки,
// передаваемое через RabbitMQ.
type NoteEventPayload struct {
	Type       string    `json:"type"`
	NoteID     uuid.UUID `json:"note_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
