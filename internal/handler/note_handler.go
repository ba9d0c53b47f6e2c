package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/metrics"
	"github.com/GoArmGo/NotesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NoteHandler — обработчик HTTP-запросов для работы с заметками.
// Все маршруты закрыты RequireAuth, пользователь берётся из контекста.
type NoteHandler struct {
	noteUseCase usecase.NoteUseCase
	logger      *slog.Logger
}

// NewNoteHandler создаёт новый экземпляр NoteHandler.
func NewNoteHandler(uc usecase.NoteUseCase, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteUseCase: uc,
		logger:      logger,
	}
}

// ListNotes — заметки текущего пользователя.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	notes, err := h.noteUseCase.ListNotes(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	count := len(notes)
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: notes}, h.logger)
}

// CreateNote — создаёт заметку от имени текущего пользователя.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var in domain.NoteInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	note, err := h.noteUseCase.CreateNote(r.Context(), userID, in)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	metrics.NoteOperation("create")
	h.logger.Info("note created", "note_id", note.ID, "user_id", userID)
	respondWithJSON(w, http.StatusCreated, envelope{Success: true, Data: note}, h.logger)
}

// GetNote — одна заметка, только для владельца.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.noteUseCase.GetNote(r.Context(), userID, noteID)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: note}, h.logger)
}

// UpdateNote — частичное обновление заметки владельцем.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var upd domain.NoteUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	note, err := h.noteUseCase.UpdateNote(r.Context(), userID, noteID, upd)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	metrics.NoteOperation("update")
	h.logger.Info("note updated", "note_id", note.ID, "user_id", userID)
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: note}, h.logger)
}

// DeleteNote — удаляет заметку владельца.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	noteID, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if err := h.noteUseCase.DeleteNote(r.Context(), userID, noteID); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	metrics.NoteOperation("delete")
	h.logger.Info("note deleted", "note_id", noteID, "user_id", userID)
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: struct{}{}}, h.logger)
}

func (h *NoteHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authorized, no token", h.logger)
	}
	return id, ok
}

// noteID разбирает идентификатор из пути. Такой заметки заведомо нет, отсюда 404.
func (h *NoteHandler) noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Debug("malformed note id", "id", raw)
		respondWithError(w, http.StatusNotFound, "Note not found", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
