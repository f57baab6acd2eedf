package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_RememberAndLastTitle(t *testing.T) {
	store := NewSessionStore()

	_, ok := store.LastTitle(1)
	assert.False(t, ok)

	store.Remember(1, "First Video")
	title, ok := store.LastTitle(1)
	assert.True(t, ok)
	assert.Equal(t, "First Video", title)

	// A new link for the same chat overwrites the remembered title
	store.Remember(1, "Second Video")
	title, _ = store.LastTitle(1)
	assert.Equal(t, "Second Video", title)
}

func TestSessionStore_ChatsAreIsolated(t *testing.T) {
	store := NewSessionStore()

	store.Remember(1, "Chat One Video")

	_, ok := store.LastTitle(2)
	assert.False(t, ok)
}
