package services

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
	"github.com/nahid/certchain/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*authService, *fakeRegistry, string, func(message string) string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sign := func(message string) string {
		sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
		require.NoError(t, err)
		// Wallets report V as 27/28.
		sig[64] += 27
		return "0x" + hex.EncodeToString(sig)
	}

	registry := newFakeRegistry()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "certchain.test",
	})
	nonces := auth.NewNonceStore(time.Minute)

	svc := NewAuthService(registry, jwtService, nonces, zerolog.Nop()).(*authService)
	return svc, registry, address, sign
}

func TestNonceRejectsBadAddress(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Nonce(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAddress)
}

func TestLoginFlow(t *testing.T) {
	svc, registry, address, sign := newAuthFixture(t)
	registry.add(address, chain.Institute{Name: "Dhaka Institute of Technology"})

	nonce, err := svc.Nonce(context.Background(), address)
	require.NoError(t, err)
	require.NotEmpty(t, nonce.Nonce)
	require.Contains(t, nonce.Message, nonce.Nonce)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address,
		Signature: sign(nonce.Message),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, 3600, result.ExpiresIn)
}

func TestLoginNonceIsSingleUse(t *testing.T) {
	svc, registry, address, sign := newAuthFixture(t)
	registry.add(address, chain.Institute{Name: "Dhaka Institute of Technology"})

	nonce, err := svc.Nonce(context.Background(), address)
	require.NoError(t, err)

	req := &dto.LoginRequest{Address: address, Signature: sign(nonce.Message)}
	_, err = svc.Login(context.Background(), req)
	require.NoError(t, err)

	// Replaying the same signed challenge fails.
	_, err = svc.Login(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}

func TestLoginRejectsWrongSigner(t *testing.T) {
	svc, registry, address, _ := newAuthFixture(t)
	registry.add(address, chain.Institute{Name: "Dhaka Institute of Technology"})

	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	nonce, err := svc.Nonce(context.Background(), address)
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(nonce.Message)), otherKey)
	require.NoError(t, err)
	sig[64] += 27

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address,
		Signature: "0x" + hex.EncodeToString(sig),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
}

func TestLoginRejectsUnregisteredInstitute(t *testing.T) {
	svc, _, address, sign := newAuthFixture(t)

	nonce, err := svc.Nonce(context.Background(), address)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address,
		Signature: sign(nonce.Message),
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLoginWithoutNonce(t *testing.T) {
	svc, _, address, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Address:   address,
		Signature: "0xdeadbeef",
	})
	assert.ErrorIs(t, err, apperrors.ErrNonceNotFound)
}
