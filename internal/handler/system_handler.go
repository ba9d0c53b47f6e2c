package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

// Pinger — всё, что нужно проверке готовности от базы
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health отвечает 200, если база доступна, и 503 иначе. db может быть nil.
func Health(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.Warn("health check failed", "error", err)
				respondWithError(w, http.StatusServiceUnavailable, "Database unavailable", logger)
				return
			}
		}
		respondWithJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"}, logger)
	}
}

// NotFound отвечает на неизвестные маршруты в общем формате
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found", logger)
	}
}

// MethodNotAllowed отвечает на неподдерживаемые методы в общем формате
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
	}
}
