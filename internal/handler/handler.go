package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/NotesApp/internal/domain"
)

// maxBodyBytes ограничивает размер JSON-тела запроса
const maxBodyBytes = 1 << 20

const (
	msgInternalError = "Internal Server Error"
	msgTimeout       = "Request timed out"
)

// envelope — единый формат ответа API
type envelope struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	User       any    `json:"user,omitempty"`
	Message    string `json:"message,omitempty"`
	Count      *int   `json:"count,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, envelope{Success: false, Message: message, StatusCode: code}, logger)
}

// respondWithAppError — единая точка перевода ошибок в HTTP-ответ.
// Доменные ошибки отдаются с их сообщением, всё остальное превращается в 500
// без подробностей: текст внутренней ошибки остаётся только в логе.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		code := statusFor(derr.Kind)
		logger.Debug("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status", code,
			"reason", derr.Message,
		)
		respondWithError(w, code, derr.Message, logger)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("request deadline exceeded", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusGatewayTimeout, msgTimeout, logger)
		return
	}

	logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	respondWithError(w, http.StatusInternalServerError, msgInternalError, logger)
}

// statusFor сопоставляет вид доменной ошибки с кодом ответа.
// Конфликт уникальности отдаётся как 400, так его ждёт клиент.
func statusFor(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrValidation), errors.Is(kind, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(kind, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON читает тело запроса в dst. Пустое или битое тело — ошибка валидации.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewError(domain.ErrValidation, "Request body is too large")
		}
		return domain.NewError(domain.ErrValidation, "Invalid request body: %s", describeDecodeError(err))
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return "empty body"
	}
	return "malformed JSON"
}
