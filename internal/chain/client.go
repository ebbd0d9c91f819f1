package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// Backend is the subset of an Ethereum node client the gateway needs:
// contract calls, transaction submission and receipt polling.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Dial connects to the configured JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain RPC at %s: %w", rpcURL, err)
	}
	return client, nil
}

// contractClient wraps a bound contract with the write/confirm protocol every
// gateway method shares: submit, wait for inclusion, check receipt status.
type contractClient struct {
	contract       *bind.BoundContract
	backend        Backend
	signer         Signer
	confirmTimeout time.Duration
	logger         zerolog.Logger
}

func newContractClient(address common.Address, rawABI string, backend Backend, signer Signer, confirmTimeout time.Duration, lgr zerolog.Logger) (*contractClient, error) {
	parsed, err := abi.JSON(strings.NewReader(rawABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &contractClient{
		contract:       bind.NewBoundContract(address, parsed, backend, backend, backend),
		backend:        backend,
		signer:         signer,
		confirmTimeout: confirmTimeout,
		logger:         lgr,
	}, nil
}

// call performs a read-only contract call.
func (c *contractClient) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if err != nil {
		return nil, fmt.Errorf("contract call %s failed: %w", method, err)
	}
	return out, nil
}

// transact submits a state-changing transaction and waits for block
// inclusion. A broadcast transaction cannot be cancelled; the timeout only
// bounds how long we poll for the receipt.
func (c *contractClient) transact(ctx context.Context, method string, args ...interface{}) error {
	opts := c.signer.TransactOpts(ctx)

	tx, err := c.contract.Transact(opts, method, args...)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Msg("Transaction submission rejected")
		return apperrors.NewChainWriteError(revertReason(err))
	}

	c.logger.Debug().Str("method", method).Str("tx", tx.Hash().Hex()).Msg("Transaction submitted, awaiting confirmation")

	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		return apperrors.NewChainWriteError(fmt.Sprintf("transaction %s not confirmed: %s", tx.Hash().Hex(), err))
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return apperrors.NewChainWriteError(fmt.Sprintf("transaction %s reverted", tx.Hash().Hex()))
	}

	c.logger.Info().Str("method", method).Str("tx", tx.Hash().Hex()).Uint64("block", receipt.BlockNumber.Uint64()).Msg("Transaction confirmed")
	return nil
}

// revertReason strips RPC noise from a rejection so the raw revert message
// reaches the caller.
func revertReason(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted: "); idx >= 0 {
		return msg[idx+len("execution reverted: "):]
	}
	return msg
}

// parseAddress validates and normalizes a hex wallet address.
func parseAddress(addr string) (common.Address, error) {
	if !common.IsHexAddress(addr) {
		return common.Address{}, apperrors.NewCustomError(apperrors.ErrInvalidAddress, fmt.Sprintf("not a valid wallet address: %s", addr))
	}
	return common.HexToAddress(addr), nil
}
