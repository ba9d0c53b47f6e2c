package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategory = "General"
	DefaultColor    = "#ffffff"
)

// Note представляет заметку пользователя,
// соответствует таблице notes в бд
type Note struct {
	ID        uuid.UUID `json:"_id" db:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" db:"title" validate:"required,max=100"`
	Content   string    `json:"content" db:"content" validate:"required"`
	Category  string    `json:"category" db:"category"`
	Color     string    `json:"color" db:"color"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	UserID    uuid.UUID `json:"user" db:"user_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime:false"`
}

func (Note) TableName() string {
	return "notes"
}

// Normalize обрезает пробелы и проставляет значения по умолчанию.
func (n *Note) Normalize() {
	n.Title = strings.TrimSpace(n.Title)
	n.Category = strings.TrimSpace(n.Category)
	if n.Category == "" {
		n.Category = DefaultCategory
	}
	if n.Color == "" {
		n.Color = DefaultColor
	}
}

// OwnedBy сообщает, принадлежит ли заметка пользователю.
func (n *Note) OwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}

// NoteInput — тело запроса на создание заметки.
// Владелец в теле не принимается: он всегда берётся из сессии.
type NoteInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Pinned   bool   `json:"pinned"`
}

// NoteUpdate — частичное обновление, nil-поля не меняются.
type NoteUpdate struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Color    *string `json:"color"`
	Pinned   *bool   `json:"pinned"`
}

// Apply переносит заданные поля обновления в заметку.
func (u NoteUpdate) Apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Category != nil {
		n.Category = *u.Category
	}
	if u.Color != nil {
		n.Color = *u.Color
	}
	if u.Pinned != nil {
		n.Pinned = *u.Pinned
	}
}
