package auth

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPersonalSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message := "certchain login challenge: test"
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27

	sigHex := "0x" + hex.EncodeToString(sig)

	assert.NoError(t, VerifyPersonalSignature(address, message, sigHex))

	// Recovery also works without the 27/28 V offset.
	sig[64] -= 27
	assert.NoError(t, VerifyPersonalSignature(address, message, "0x"+hex.EncodeToString(sig)))
}

func TestVerifyPersonalSignatureMismatch(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	message := "certchain login challenge: test"
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), otherKey)
	require.NoError(t, err)
	sig[64] += 27

	err = VerifyPersonalSignature(crypto.PubkeyToAddress(key.PublicKey).Hex(), message, "0x"+hex.EncodeToString(sig))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyPersonalSignatureTamperedMessage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte("original message")), key)
	require.NoError(t, err)
	sig[64] += 27

	err = VerifyPersonalSignature(address, "different message", "0x"+hex.EncodeToString(sig))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyPersonalSignatureMalformed(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	tests := []struct {
		name string
		sig  string
	}{
		{"not hex", "0xzzzz"},
		{"too short", "0xdeadbeef"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPersonalSignature(address, "message", tt.sig)
			assert.ErrorIs(t, err, ErrMalformedSignature)
		})
	}
}
