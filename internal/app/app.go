package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/NotesApp/internal/config"
	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/usecase"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config   *config.Config
	logger   *slog.Logger
	router   http.Handler
	consumer ports.NoteEventConsumer
	archive  usecase.ArchiveUseCase
	closers  []io.Closer
}

// NewApp собирает приложение. closers закрываются в обратном порядке при Shutdown.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	consumer ports.NoteEventConsumer,
	archive usecase.ArchiveUseCase,
	closers ...io.Closer,
) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		router:   router,
		consumer: consumer,
		archive:  archive,
		closers:  closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до SIGINT/SIGTERM или отмены ctx
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, ":"+a.Config.ServerPort, a.router, a.logger)
	case ModeWorker:
		err = runWorker(ctx, a.consumer, a.archive, a.logger)
	default:
		err = fmt.Errorf("unknown mode %q (use %q or %q)", mode, ModeServer, ModeWorker)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown finished with errors", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] == nil {
			continue
		}
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
