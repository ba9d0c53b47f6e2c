package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/logger"
	"github.com/GoArmGo/NotesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCookie = CookieConfig{Name: "token", SameSite: http.SameSiteLaxMode}

type body struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	User       json.RawMessage `json:"user"`
	Message    string          `json:"message"`
	Count      *int            `json:"count"`
	StatusCode int             `json:"statusCode"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) body {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var b body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b), rec.Body.String())
	return b
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	return nil
}

func alice() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "alice", Email: "a@x.io", CreatedAt: time.Now().UTC()}
}

func TestRespondWithAppError(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{domain.NewError(domain.ErrValidation, "Title is required"), http.StatusBadRequest, "Title is required"},
		{domain.NewError(domain.ErrConflict, "User with this email or username already exists"), http.StatusBadRequest, "User with this email or username already exists"},
		{domain.NewError(domain.ErrUnauthorized, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{domain.NewError(domain.ErrForbidden, "Not authorized to access this note"), http.StatusForbidden, "Not authorized to access this note"},
		{fmt.Errorf("usecase: get note: %w", domain.NewError(domain.ErrNotFound, "Note not found")), http.StatusNotFound, "Note not found"},
		{errors.New("pq: connection refused to 10.0.0.5"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, logger.Discard())

			assert.Equal(t, tt.code, rec.Code)
			b := decodeBody(t, rec)
			assert.False(t, b.Success)
			assert.Equal(t, tt.message, b.Message)
			assert.Equal(t, tt.code, b.StatusCode)
			assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	user := alice()
	expires := time.Now().Add(30 * 24 * time.Hour)
	var got domain.RegisterInput
	h := NewAuthHandler(&stubAuth{
		register: func(in domain.RegisterInput) (*domain.User, *usecase.Session, error) {
			got = in
			return user, &usecase.Session{Token: "jwt-token", ExpiresAt: expires}, nil
		},
	}, CookieConfig{Name: "token", Secure: true, SameSite: http.SameSiteLaxMode}, logger.Discard())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"alice","email":"a@x.io","password":"secret1"}`))
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.RegisterInput{Username: "alice", Email: "a@x.io", Password: "secret1"}, got)

	b := decodeBody(t, rec)
	assert.True(t, b.Success)
	assert.Contains(t, string(b.User), user.ID.String())
	assert.NotContains(t, rec.Body.String(), "password")

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, "jwt-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.InDelta(t, 30*24*60*60, c.MaxAge, 5)
}

func TestAuthHandler_RegisterErrors(t *testing.T) {
	h := NewAuthHandler(&stubAuth{
		register: func(domain.RegisterInput) (*domain.User, *usecase.Session, error) {
			return nil, nil, domain.NewError(domain.ErrConflict, "User with this email or username already exists")
		},
	}, testCookie, logger.Discard())

	t.Run("conflict", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","email":"a@x.io","password":"secret1"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User with this email or username already exists", decodeBody(t, rec).Message)
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body: malformed JSON", decodeBody(t, rec).Message)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body: empty body", decodeBody(t, rec).Message)
	})

	t.Run("wrong type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":42}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body: username has the wrong type", decodeBody(t, rec).Message)
	})
}

func TestAuthHandler_LoginFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuth{
		login: func(domain.LoginInput) (*domain.User, *usecase.Session, error) {
			return nil, nil, domain.NewError(domain.ErrUnauthorized, "Invalid credentials")
		},
	}, testCookie, logger.Discard())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.io","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	b := decodeBody(t, rec)
	assert.False(t, b.Success)
	assert.Equal(t, "Invalid credentials", b.Message)
	assert.Nil(t, sessionCookie(rec))
}

func TestAuthHandler_Login(t *testing.T) {
	user := alice()
	h := NewAuthHandler(&stubAuth{
		login: func(in domain.LoginInput) (*domain.User, *usecase.Session, error) {
			return user, &usecase.Session{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}, testCookie, logger.Discard())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.io","password":"secret1"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody(t, rec).Success)
	require.NotNil(t, sessionCookie(rec))
	assert.False(t, sessionCookie(rec).Secure)
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookie, logger.Discard())

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	b := decodeBody(t, rec)
	assert.True(t, b.Success)
	assert.Equal(t, "Logged out successfully", b.Message)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestRequireAuth(t *testing.T) {
	user := alice()
	auth := &stubAuth{
		currentUser: func(token string) (*domain.User, error) {
			switch token {
			case "":
				return nil, domain.NewError(domain.ErrUnauthorized, "Not authorized, no token")
			case "good":
				return user, nil
			default:
				return nil, domain.NewError(domain.ErrUnauthorized, "Not authorized, token failed")
			}
		},
	}

	reached := false
	var seen uuid.UUID
	guarded := RequireAuth(auth, "token", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		code    int
		message string
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized, "Not authorized, no token"},
		{"bad cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "forged"}) }, http.StatusUnauthorized, "Not authorized, token failed"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "good"}) }, http.StatusNoContent, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.message != "" {
				assert.False(t, reached, "handler must not run")
				assert.Equal(t, tt.message, decodeBody(t, rec).Message)
			} else {
				assert.True(t, reached)
				assert.Equal(t, user.ID, seen)
			}
		})
	}
}

func TestTokenFromRequest_CookieWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", TokenFromRequest(req, "token"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, TokenFromRequest(req, "token"))
}

// serveNotes прогоняет запрос через chi, чтобы работал URLParam
func serveNotes(h *NoteHandler, user *domain.User, method, target, payload string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/notes", h.ListNotes)
	r.Post("/api/notes", h.CreateNote)
	r.Get("/api/notes/{id}", h.GetNote)
	r.Put("/api/notes/{id}", h.UpdateNote)
	r.Delete("/api/notes/{id}", h.DeleteNote)

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	if user != nil {
		req = req.WithContext(WithCurrentUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNoteHandler_List(t *testing.T) {
	user := alice()
	h := NewNoteHandler(&stubNotes{
		list: func(userID uuid.UUID) ([]domain.Note, error) {
			assert.Equal(t, user.ID, userID)
			return []domain.Note{
				{ID: uuid.New(), Title: "a", UserID: userID},
				{ID: uuid.New(), Title: "b", UserID: userID},
			}, nil
		},
	}, logger.Discard())

	rec := serveNotes(h, user, http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	b := decodeBody(t, rec)
	assert.True(t, b.Success)
	require.NotNil(t, b.Count)
	assert.Equal(t, 2, *b.Count)

	var notes []map[string]any
	require.NoError(t, json.Unmarshal(b.Data, &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, user.ID.String(), notes[0]["user"])
}

func TestNoteHandler_ListEmpty(t *testing.T) {
	h := NewNoteHandler(&stubNotes{
		list: func(uuid.UUID) ([]domain.Note, error) { return []domain.Note{}, nil },
	}, logger.Discard())

	rec := serveNotes(h, alice(), http.MethodGet, "/api/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"count":0,"data":[]}`, rec.Body.String())
}

func TestNoteHandler_Create(t *testing.T) {
	user := alice()
	h := NewNoteHandler(&stubNotes{
		create: func(userID uuid.UUID, in domain.NoteInput) (*domain.Note, error) {
			return &domain.Note{ID: uuid.New(), Title: in.Title, Content: in.Content, UserID: userID}, nil
		},
	}, logger.Discard())

	rec := serveNotes(h, user, http.MethodPost, "/api/notes", `{"title":"T","content":"<p>hi</p>","user":"`+uuid.NewString()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var note domain.Note
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &note))
	assert.Equal(t, "T", note.Title)
	assert.Equal(t, user.ID, note.UserID, "owner comes from the session, never from the body")
}

func TestNoteHandler_MalformedIDIsNotFound(t *testing.T) {
	h := NewNoteHandler(&stubNotes{}, logger.Discard())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := serveNotes(h, alice(), method, "/api/notes/not-a-uuid", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.Equal(t, "Note not found", decodeBody(t, rec).Message)
	}
}

func TestNoteHandler_Forbidden(t *testing.T) {
	h := NewNoteHandler(&stubNotes{
		get: func(uuid.UUID, uuid.UUID) (*domain.Note, error) {
			return nil, domain.NewError(domain.ErrForbidden, "Not authorized to access this note")
		},
	}, logger.Discard())

	rec := serveNotes(h, alice(), http.MethodGet, "/api/notes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to access this note", decodeBody(t, rec).Message)
}

func TestNoteHandler_UpdatePassesOnlyGivenFields(t *testing.T) {
	noteID := uuid.New()
	var got domain.NoteUpdate
	h := NewNoteHandler(&stubNotes{
		update: func(_ uuid.UUID, id uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error) {
			assert.Equal(t, noteID, id)
			got = upd
			return &domain.Note{ID: id, Title: "kept", Pinned: true}, nil
		},
	}, logger.Discard())

	rec := serveNotes(h, alice(), http.MethodPut, "/api/notes/"+noteID.String(), `{"pinned":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.Pinned)
	assert.True(t, *got.Pinned)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.Content)
}

func TestNoteHandler_Delete(t *testing.T) {
	h := NewNoteHandler(&stubNotes{
		delete: func(uuid.UUID, uuid.UUID) error { return nil },
	}, logger.Discard())

	rec := serveNotes(h, alice(), http.MethodDelete, "/api/notes/"+uuid.NewString(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())
}

func TestNoteHandler_InternalErrorIsOpaque(t *testing.T) {
	h := NewNoteHandler(&stubNotes{
		list: func(uuid.UUID) ([]domain.Note, error) {
			return nil, errors.New("usecase: list notes: pq: relation \"notes\" does not exist")
		},
	}, logger.Discard())

	rec := serveNotes(h, alice(), http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestNoteHandler_WithoutUserInContext(t *testing.T) {
	h := NewNoteHandler(&stubNotes{}, logger.Discard())
	rec := serveNotes(h, nil, http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type pingerFunc func() error

func (f pingerFunc) PingContext(_ context.Context) error { return f() }

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(pingerFunc(func() error { return nil }), logger.Discard())(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	Health(pingerFunc(func() error { return errors.New("down") }), logger.Discard())(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database unavailable", decodeBody(t, rec).Message)
}
