package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteJSONFieldNames(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note := Note{ID: uuid.New(), Title: "T", Content: "c", UserID: uuid.New(), CreatedAt: ts, UpdatedAt: ts}

	raw, err := json.Marshal(note)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"_id", "title", "content", "category", "color", "pinned", "user", "createdAt", "updatedAt"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, note.ID.String(), fields["_id"])
	assert.Equal(t, note.UserID.String(), fields["user"])
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "created_at")
	assert.NotContains(t, fields, "updated_at")
}

func TestUserJSONHidesHash(t *testing.T) {
	user := User{ID: uuid.New(), Username: "alice", Email: "a@x.io", PasswordHash: "$2a$10$secret"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, user.ID.String(), fields["_id"])
	assert.Contains(t, fields, "createdAt")
	assert.NotContains(t, string(raw), "secret")
}
