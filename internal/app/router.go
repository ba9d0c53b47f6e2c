package app

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/NotesApp/internal/config"
	"github.com/GoArmGo/NotesApp/internal/handler"
	"github.com/GoArmGo/NotesApp/internal/metrics"
	"github.com/GoArmGo/NotesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps — зависимости HTTP-слоя
type RouterDeps struct {
	Config      *config.Config
	Logger      *slog.Logger
	AuthUseCase usecase.AuthUseCase
	NoteUseCase usecase.NoteUseCase
	DB          handler.Pinger
}

// NewRouter собирает маршруты API
func NewRouter(d RouterDeps) http.Handler {
	cfg := d.Config
	cookie := handler.CookieConfig{
		Name:     cfg.CookieName,
		Secure:   cfg.IsProduction(),
		SameSite: cfg.SameSite(),
	}

	authHandler := handler.NewAuthHandler(d.AuthUseCase, cookie, d.Logger)
	noteHandler := handler.NewNoteHandler(d.NoteUseCase, d.Logger)
	requireAuth := handler.RequireAuth(d.AuthUseCase, cfg.CookieName, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(d.Logger))
	r.Use(handler.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(handler.Timeout(cfg.RequestTimeout, d.Logger))
	}

	r.NotFound(handler.NotFound(d.Logger))
	r.MethodNotAllowed(handler.MethodNotAllowed(d.Logger))

	r.Get("/healthz", handler.Health(d.DB, d.Logger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/api/notes", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", noteHandler.ListNotes)
		r.Post("/", noteHandler.CreateNote)
		r.Get("/{id}", noteHandler.GetNote)
		r.Put("/{id}", noteHandler.UpdateNote)
		r.Delete("/{id}", noteHandler.DeleteNote)
	})

	return r
}
