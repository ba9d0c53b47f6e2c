package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
	"github.com/GoArmGo/NotesApp/internal/usecase"
)

// runWorker потребляет события заметок и зеркалирует их в архив до отмены ctx
func runWorker(
	ctx context.Context,
	consumer ports.NoteEventConsumer,
	archive usecase.ArchiveUseCase,
	logger *slog.Logger,
) error {
	if consumer == nil || archive == nil {
		return errors.New("worker mode needs RABBITMQ_URL and MinIO settings")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	handle := func(ctx context.Context, event payloads.NoteEventPayload) error {
		logger.Info("processing note event", "type", event.Type, "note_id", event.NoteID)
		return archive.HandleNoteEvent(ctx, event)
	}

	if err := consumer.StartConsumingNoteEvents(workerCtx, handle); err != nil {
		return fmt.Errorf("failed to start note event consumer: %w", err)
	}

	logger.Info("worker started, waiting for note events")
	<-workerCtx.Done()

	logger.Info("worker stopped")
	return nil
}
