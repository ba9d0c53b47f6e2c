package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/metrics"
	"github.com/GoArmGo/NotesApp/internal/usecase"
)

// CookieConfig описывает сессионную cookie
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// AuthHandler — обработчик регистрации, входа и выхода.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	cookie      CookieConfig
	logger      *slog.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(uc usecase.AuthUseCase, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: uc,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register — создаёт аккаунт и сразу выставляет сессионную cookie.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	user, session, err := h.authUseCase.Register(r.Context(), in)
	metrics.AuthAttempt("register", err == nil)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	h.setSessionCookie(w, session)
	respondWithJSON(w, http.StatusCreated, envelope{Success: true, User: user}, h.logger)
}

// Login — проверяет email и пароль и выставляет сессионную cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	user, session, err := h.authUseCase.Login(r.Context(), in)
	metrics.AuthAttempt("login", err == nil)
	if err != nil {
		respondWithAppError(w, r, err, h.logger)
		return
	}

	h.setSessionCookie(w, session)
	respondWithJSON(w, http.StatusOK, envelope{Success: true, User: user}, h.logger)
}

// Logout — стирает cookie. Сам токен остаётся действительным до истечения.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
	respondWithJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out successfully"}, h.logger)
}

// Me — возвращает текущего пользователя. Вызывается только за RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authorized, no token", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, envelope{Success: true, User: user}, h.logger)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *usecase.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: h.cookie.SameSite,
	})
}
