package ports

import (
	"context"

	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
)

// NoteEventPublisher определяет методы для публикации событий об изменении заметок
// Этот интерфейс используется бизнес-логикой заметок
type NoteEventPublisher interface {
	PublishNoteEvent(ctx context.Context, payload payloads.NoteEventPayload) error
}

// NoteEventConsumer определяет методы для потребления событий о заметках
// будет использоваться воркером архивации
type NoteEventConsumer interface {
	// StartConsumingNoteEvents начинает прослушивание очереди,
	// handler вызывается для каждого полученного сообщения
	StartConsumingNoteEvents(ctx context.Context, handler func(context.Context, payloads.NoteEventPayload) error) error
}
