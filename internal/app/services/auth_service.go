package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
	"github.com/nahid/certchain/internal/pkg/auth"
)

// AuthService implements the wallet login flow: a signed nonce challenge
// exchanged for a bearer token bound to the institute's wallet address.
type AuthService interface {
	Nonce(ctx context.Context, address string) (*dto.NonceResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	registry   chain.InstitutionRegistry
	jwtService *auth.JWTService
	nonces     *auth.NonceStore
	logger     zerolog.Logger
}

// NewAuthService creates a new wallet auth service.
func NewAuthService(registry chain.InstitutionRegistry, jwtService *auth.JWTService, nonces *auth.NonceStore, lgr zerolog.Logger) AuthService {
	return &authService{
		registry:   registry,
		jwtService: jwtService,
		nonces:     nonces,
		logger:     lgr.With().Str("service", "auth").Logger(),
	}
}

// Nonce issues a fresh single-use login challenge for the address.
func (s *authService) Nonce(ctx context.Context, address string) (*dto.NonceResponse, error) {
	if !common.IsHexAddress(address) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidAddress, "address must be a hex wallet address")
	}

	nonce := uuid.New().String()
	s.nonces.Put(address, nonce)

	return &dto.NonceResponse{
		Nonce:   nonce,
		Message: challengeMessage(nonce),
	}, nil
}

// Login verifies the signed challenge and issues a token. Only registered
// institutes can log in; verifiers use the public endpoints without a token.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	nonce, ok := s.nonces.Consume(req.Address)
	if !ok {
		return nil, apperrors.ErrNonceNotFound
	}

	if err := auth.VerifyPersonalSignature(req.Address, challengeMessage(nonce), req.Signature); err != nil {
		if errors.Is(err, auth.ErrMalformedSignature) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidSignature, "signature is malformed")
		}
		return nil, apperrors.ErrInvalidSignature
	}

	registered, err := s.registry.HasInstitutePermission(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, apperrors.ErrPermissionDenied
	}

	address := strings.ToLower(req.Address)
	token, expiresIn, err := s.jwtService.GenerateToken(address)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("address", address).Msg("Institute logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Address:     address,
	}, nil
}

// challengeMessage is the exact text the wallet signs.
func challengeMessage(nonce string) string {
	return fmt.Sprintf("certchain login challenge: %s", nonce)
}
