package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceStoreConsumeIsSingleUse(t *testing.T) {
	store := NewNonceStore(time.Minute)
	store.Put("0xAB5801a7D398351b8bE11C439e05C5B3259aeC9B", "nonce-1")

	// Lookup is case-insensitive on the address.
	nonce, ok := store.Consume("0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	require.True(t, ok)
	assert.Equal(t, "nonce-1", nonce)

	_, ok = store.Consume("0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	assert.False(t, ok)
}

func TestNonceStorePutReplaces(t *testing.T) {
	store := NewNonceStore(time.Minute)
	store.Put("0xaa", "first")
	store.Put("0xaa", "second")

	nonce, ok := store.Consume("0xaa")
	require.True(t, ok)
	assert.Equal(t, "second", nonce)
}

func TestNonceStoreExpiry(t *testing.T) {
	store := NewNonceStore(-time.Second)
	store.Put("0xaa", "expired")

	_, ok := store.Consume("0xaa")
	assert.False(t, ok)
}

func TestNonceStoreUnknownAddress(t *testing.T) {
	store := NewNonceStore(time.Minute)

	_, ok := store.Consume("0xaa")
	assert.False(t, ok)
}
