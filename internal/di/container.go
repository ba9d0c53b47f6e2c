package di

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/GoArmGo/NotesApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/NotesApp/internal/app"
	"github.com/GoArmGo/NotesApp/internal/auth"
	"github.com/GoArmGo/NotesApp/internal/config"
	"github.com/GoArmGo/NotesApp/internal/core/ports"
	"github.com/GoArmGo/NotesApp/internal/database/client"
	"github.com/GoArmGo/NotesApp/internal/database/postgres"
	"github.com/GoArmGo/NotesApp/internal/database/storage"
	"github.com/GoArmGo/NotesApp/internal/logger"
	"github.com/GoArmGo/NotesApp/internal/metrics"
	"github.com/GoArmGo/NotesApp/internal/rabbitmq"
	"github.com/GoArmGo/NotesApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// Архив в MinIO поднимается только в режиме worker.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	metrics.Init()

	var closers []io.Closer
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
		return nil, err
	}

	// 2. PostgreSQL и миграции
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, dbClient)

	// 3. Хранилища
	userStorage, noteStorage, err := buildStorages(cfg, dbClient, slogger)
	if err != nil {
		return fail(err)
	}

	// 4. RabbitMQ. Без RABBITMQ_URL события не публикуются
	var (
		publisher ports.NoteEventPublisher
		consumer  ports.NoteEventConsumer
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, rabbitMQClient)
		publisher = rabbitMQClient
		consumer = rabbitMQClient
	} else {
		slogger.Warn("RABBITMQ_URL is empty, note events are disabled")
	}

	// 5. Бизнес-логика
	hasher := auth.NewHasher(cfg.HashConcurrency)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authUseCase := usecase.NewAuthUseCase(userStorage, hasher, tokens, slogger)
	noteUseCase := usecase.NewNoteUseCase(noteStorage, publisher, slogger)

	// 6. Архив заметок (S3 / MinIO)
	var archiveUseCase usecase.ArchiveUseCase
	if mode == app.ModeWorker {
		fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(fmt.Errorf("archive storage: %w", err))
		}
		archiveUseCase = usecase.NewArchiveUseCase(noteStorage, fileStorage, slogger)
	}

	// 7. HTTP
	router := app.NewRouter(app.RouterDeps{
		Config:      cfg,
		Logger:      slogger,
		AuthUseCase: authUseCase,
		NoteUseCase: noteUseCase,
		DB:          dbClient.DB,
	})

	application := app.NewApp(cfg, slogger, router, consumer, archiveUseCase, closers...)

	slogger.Info("all dependencies initialized", "mode", mode, "storage_driver", cfg.StorageDriver)
	return application, nil
}

// buildStorages выбирает реализацию хранилищ по STORAGE_DRIVER
func buildStorages(cfg *config.Config, dbClient *client.Client, logger *slog.Logger) (ports.UserStorage, ports.NoteStorage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverGORM:
		gdb, err := postgres.OpenGorm(dbClient.DB.DB)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewGormUserStorage(gdb, logger), postgres.NewGormNoteStorage(gdb, logger), nil
	default:
		return storage.NewUserStorage(dbClient.DB, logger), storage.NewNoteStorage(dbClient.DB, logger), nil
	}
}
