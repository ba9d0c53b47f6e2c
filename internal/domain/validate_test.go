package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RegisterInput(t *testing.T) {
	tests := []struct {
		name    string
		in      RegisterInput
		wantErr string
	}{
		{"valid", RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"}, ""},
		{"short username", RegisterInput{Username: "al", Email: "alice@x.com", Password: "secret1"}, "Username must be at least 3 characters"},
		{"bad email", RegisterInput{Username: "alice", Email: "alice.x.com", Password: "secret1"}, "Please provide a valid email"},
		{"short password", RegisterInput{Username: "alice", Email: "alice@x.com", Password: "123"}, "Password must be at least 6 characters"},
		{"missing password", RegisterInput{Username: "alice", Email: "alice@x.com"}, "Password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Note(t *testing.T) {
	n := Note{Title: strings.Repeat("a", 100), Content: "<p>hi</p>"}
	require.NoError(t, Validate(n))

	n.Title = strings.Repeat("a", 101)
	err := Validate(n)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Title cannot be more than 100 characters", err.Error())

	err = Validate(Note{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Title is required, Content is required", err.Error())
}

func TestNote_NormalizeAndApply(t *testing.T) {
	n := Note{Title: "  T  ", Content: "c", Category: "   "}
	n.Normalize()
	assert.Equal(t, "T", n.Title)
	assert.Equal(t, DefaultCategory, n.Category)
	assert.Equal(t, DefaultColor, n.Color)
	assert.False(t, n.Pinned)

	title := "New"
	pinned := true
	NoteUpdate{Title: &title, Pinned: &pinned}.Apply(&n)
	assert.Equal(t, "New", n.Title)
	assert.Equal(t, "c", n.Content)
	assert.True(t, n.Pinned)
}
