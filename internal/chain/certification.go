package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// CertificationClient talks to the certification ledger contract.
type CertificationClient struct {
	*contractClient
}

var _ CertificationLedger = (*CertificationClient)(nil)

// NewCertificationClient binds the ledger contract at the given address.
func NewCertificationClient(address string, backend Backend, signer Signer, confirmTimeout time.Duration, lgr zerolog.Logger) (*CertificationClient, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	client, err := newContractClient(addr, certificationABI, backend, signer, confirmTimeout, lgr.With().Str("contract", "certification").Logger())
	if err != nil {
		return nil, err
	}

	return &CertificationClient{contractClient: client}, nil
}

// GenerateCertificate writes a new certificate entry keyed by certId and
// waits for the transaction to be mined.
func (c *CertificationClient) GenerateCertificate(ctx context.Context, cert LedgerCertificate) error {
	return c.transact(ctx, "generateCertificate",
		cert.CertID,
		cert.Name,
		cert.StudentID,
		cert.Father,
		cert.Mother,
		new(big.Int).SetUint64(cert.DegreeIndex),
		new(big.Int).SetUint64(cert.DepartmentIndex),
		cert.CGPA,
		cert.Session,
		cert.CreatedAt,
		cert.ContentHash,
	)
}

// VerifyCertificate answers existence/validity for a certId. A missing
// certificate yields Exists=false without an error.
func (c *CertificationClient) VerifyCertificate(ctx context.Context, certID string) (*VerifyResult, error) {
	out, err := c.call(ctx, "verifyCertificate", certID)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Exists:         out[0].(bool),
		Valid:          out[1].(bool),
		Revoked:        out[2].(bool),
		IssuedBy:       normalizeAddress(out[3].(common.Address)),
		ContentHash:    out[4].(string),
		IssueTimestamp: out[5].(*big.Int).Int64(),
	}

	if !result.Exists {
		return &VerifyResult{Exists: false}, nil
	}

	return result, nil
}

// GetCertificate reads the full ledger record for a certId.
func (c *CertificationClient) GetCertificate(ctx context.Context, certID string) (*LedgerCertificate, error) {
	out, err := c.call(ctx, "getCertificateData", certID)
	if err != nil {
		return nil, err
	}

	cert := &LedgerCertificate{
		CertID:          certID,
		Name:            out[0].(string),
		StudentID:       out[1].(string),
		Father:          out[2].(string),
		Mother:          out[3].(string),
		DegreeIndex:     out[4].(*big.Int).Uint64(),
		DepartmentIndex: out[5].(*big.Int).Uint64(),
		CGPA:            out[6].(string),
		Session:         out[7].(string),
		CreatedAt:       out[8].(string),
		ContentHash:     out[9].(string),
		IssuedBy:        normalizeAddress(out[10].(common.Address)),
		Revoked:         out[11].(bool),
	}

	return cert, nil
}

// RevokeCertificate marks a certificate invalid. The transition is one-way.
func (c *CertificationClient) RevokeCertificate(ctx context.Context, certID string) error {
	return c.transact(ctx, "revokeCertificate", certID)
}

// UpdateCertificateContentHash replaces the stored document pointer.
func (c *CertificationClient) UpdateCertificateContentHash(ctx context.Context, certID, contentHash string) error {
	return c.transact(ctx, "updateCertificateIpfsHash", certID, contentHash)
}
