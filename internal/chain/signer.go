package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is the capability required to submit registry and ledger
// transactions. It is injected into the gateway constructors rather than
// pulled from ambient state, so tests can substitute a mock.
type Signer interface {
	Address() common.Address
	TransactOpts(ctx context.Context) *bind.TransactOpts
}

// PrivateKeySigner signs transactions with a locally held ECDSA key.
type PrivateKeySigner struct {
	key  *ecdsa.PrivateKey
	opts *bind.TransactOpts
	addr common.Address
}

// NewPrivateKeySigner builds a signer from a hex-encoded private key bound to
// the given chain ID.
func NewPrivateKeySigner(hexKey string, chainID int64) (*PrivateKeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chain private key: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	return &PrivateKeySigner{
		key:  key,
		opts: opts,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the account transactions are sent from.
func (s *PrivateKeySigner) Address() common.Address {
	return s.addr
}

// TransactOpts returns per-call transact options carrying the caller context.
func (s *PrivateKeySigner) TransactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *s.opts
	opts.Context = ctx
	return &opts
}
