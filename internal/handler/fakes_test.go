package handler

import (
	"context"

	"github.com/GoArmGo/NotesApp/internal/domain"
	"github.com/GoArmGo/NotesApp/internal/usecase"
	"github.com/google/uuid"
)

type stubAuth struct {
	register    func(domain.RegisterInput) (*domain.User, *usecase.Session, error)
	login       func(domain.LoginInput) (*domain.User, *usecase.Session, error)
	currentUser func(token string) (*domain.User, error)
}

func (s *stubAuth) Register(_ context.Context, in domain.RegisterInput) (*domain.User, *usecase.Session, error) {
	return s.register(in)
}

func (s *stubAuth) Login(_ context.Context, in domain.LoginInput) (*domain.User, *usecase.Session, error) {
	return s.login(in)
}

func (s *stubAuth) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	return s.currentUser(token)
}

type stubNotes struct {
	list   func(userID uuid.UUID) ([]domain.Note, error)
	create func(userID uuid.UUID, in domain.NoteInput) (*domain.Note, error)
	get    func(userID, noteID uuid.UUID) (*domain.Note, error)
	update func(userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error)
	delete func(userID, noteID uuid.UUID) error
}

func (s *stubNotes) ListNotes(_ context.Context, userID uuid.UUID) ([]domain.Note, error) {
	return s.list(userID)
}

func (s *stubNotes) CreateNote(_ context.Context, userID uuid.UUID, in domain.NoteInput) (*domain.Note, error) {
	return s.create(userID, in)
}

func (s *stubNotes) GetNote(_ context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	return s.get(userID, noteID)
}

func (s *stubNotes) UpdateNote(_ context.Context, userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error) {
	return s.update(userID, noteID, upd)
}

func (s *stubNotes) DeleteNote(_ context.Context, userID, noteID uuid.UUID) error {
	return s.delete(userID, noteID)
}
