package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]domain.User
	err   error
	calls int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]domain.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return domain.NewError(domain.ErrConflict, "User with this email or username already exists")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	u.PasswordHash = ""
	return &u, nil
}

func (m *memUsers) GetUserByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindUserByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email || u.Username == username {
			u.PasswordHash = ""
			return &u, nil
		}
	}
	return nil, nil
}

type memNotes struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]domain.Note
	err   error
	saved int
}

func newMemNotes() *memNotes {
	return &memNotes{byID: map[uuid.UUID]domain.Note{}}
}

func (m *memNotes) SaveNote(_ context.Context, n *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved++
	m.byID[n.ID] = *n
	return nil
}

func (m *memNotes) GetNoteByID(_ context.Context, id uuid.UUID) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	n, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *memNotes) ListNotesByUser(_ context.Context, userID uuid.UUID) ([]domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Note
	for _, n := range m.byID {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *memNotes) UpdateNote(_ context.Context, n *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[n.ID]; !ok {
		return domain.NewError(domain.ErrNotFound, "Note not found")
	}
	m.byID[n.ID] = *n
	return nil
}

func (m *memNotes) DeleteNote(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.NewError(domain.ErrNotFound, "Note not found")
	}
	delete(m.byID, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []payloads.NoteEventPayload
	err    error
}

func (p *recordingPublisher) PublishNoteEvent(_ context.Context, e payloads.NoteEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memFiles struct {
	objects   map[string]string
	uploadErr error
}

func newMemFiles() *memFiles {
	return &memFiles{objects: map[string]string{}}
}

func (f *memFiles) UploadFile(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[key] = string(b)
	return "mem://" + key, nil
}

func (f *memFiles) DeleteFile(_ context.Context, key string) error {
	if _, ok := f.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(f.objects, key)
	return nil
}
