package domain

import (
	"errors"
	"fmt"
)

// Виды доменных ошибок. Сопоставляются через errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// Error — ошибка бизнес-логики, сообщение которой можно безопасно отдать клиенту.
type Error struct {
	Kind    error
	Message string
}

// NewError создаёт доменную ошибку заданного вида.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
