package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// PasswordHash заполняется только при проверке пароля и никогда не сериализуется.
type User struct {
	ID           uuid.UUID `json:"_id" db:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" db:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// RegisterInput — данные для регистрации нового пользователя
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput — данные для входа
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
