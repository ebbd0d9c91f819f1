package auth

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signature errors
var (
	ErrMalformedSignature = errors.New("malformed signature")
	ErrSignatureMismatch  = errors.New("signature was not produced by the claimed address")
)

// VerifyPersonalSignature checks that sigHex is a valid EIP-191 personal_sign
// signature over message by the claimed address.
func VerifyPersonalSignature(address, message, sigHex string) error {
	if !common.IsHexAddress(address) {
		return ErrSignatureMismatch
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	if err != nil || len(sig) != 65 {
		return ErrMalformedSignature
	}

	// Wallets return V as 27/28; go-ethereum expects 0/1.
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	hash := accounts.TextHash([]byte(message))

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return ErrMalformedSignature
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	if recovered != common.HexToAddress(address) {
		return ErrSignatureMismatch
	}

	return nil
}
