package chain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// InstitutionClient talks to the institution registry contract.
type InstitutionClient struct {
	*contractClient
}

var _ InstitutionRegistry = (*InstitutionClient)(nil)

// NewInstitutionClient binds the registry contract at the given address.
func NewInstitutionClient(address string, backend Backend, signer Signer, confirmTimeout time.Duration, lgr zerolog.Logger) (*InstitutionClient, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	client, err := newContractClient(addr, institutionABI, backend, signer, confirmTimeout, lgr.With().Str("contract", "institution").Logger())
	if err != nil {
		return nil, err
	}

	return &InstitutionClient{contractClient: client}, nil
}

// AddInstitute registers a new institute record keyed by wallet address.
func (c *InstitutionClient) AddInstitute(ctx context.Context, account string, inst Institute) error {
	addr, err := parseAddress(account)
	if err != nil {
		return err
	}

	return c.transact(ctx, "addInstitute",
		addr,
		inst.Name,
		inst.PhysicalAddress,
		inst.Acronym,
		inst.Link,
		inst.Degrees,
		inst.Departments,
	)
}

// GetInstitute reads the registry record for the given wallet address.
func (c *InstitutionClient) GetInstitute(ctx context.Context, account string) (*Institute, error) {
	addr, err := parseAddress(account)
	if err != nil {
		return nil, err
	}

	out, err := c.call(ctx, "getInstitute", addr)
	if err != nil {
		return nil, err
	}

	inst := &Institute{
		Account:         normalizeAddress(addr),
		Name:            out[0].(string),
		PhysicalAddress: out[1].(string),
		Acronym:         out[2].(string),
		Link:            out[3].(string),
		Degrees:         out[4].([]string),
		Departments:     out[5].([]string),
	}

	return inst, nil
}

// HasInstitutePermission reports whether the account is a registered institute.
func (c *InstitutionClient) HasInstitutePermission(ctx context.Context, account string) (bool, error) {
	addr, err := parseAddress(account)
	if err != nil {
		return false, err
	}

	out, err := c.call(ctx, "checkInstitutePermission", addr)
	if err != nil {
		return false, err
	}

	return out[0].(bool), nil
}

// AddDegrees appends degree names to the signer institute's list.
func (c *InstitutionClient) AddDegrees(ctx context.Context, names []string) error {
	return c.transact(ctx, "addDegrees", names)
}

// UpdateDegree renames the degree at the given index in place.
func (c *InstitutionClient) UpdateDegree(ctx context.Context, index uint64, name string) error {
	return c.transact(ctx, "updateDegree", new(big.Int).SetUint64(index), name)
}

// RemoveDegree deletes the degree at the given index, shifting later entries.
func (c *InstitutionClient) RemoveDegree(ctx context.Context, index uint64) error {
	return c.transact(ctx, "removeDegree", new(big.Int).SetUint64(index))
}

// ClearDegrees empties the signer institute's degree list.
func (c *InstitutionClient) ClearDegrees(ctx context.Context) error {
	return c.transact(ctx, "clearDegrees")
}

// AddDepartments appends department names to the signer institute's list.
func (c *InstitutionClient) AddDepartments(ctx context.Context, names []string) error {
	return c.transact(ctx, "addDepartments", names)
}

// UpdateDepartment renames the department at the given index in place.
func (c *InstitutionClient) UpdateDepartment(ctx context.Context, index uint64, name string) error {
	return c.transact(ctx, "updateDepartment", new(big.Int).SetUint64(index), name)
}

// RemoveDepartment deletes the department at the given index, shifting later entries.
func (c *InstitutionClient) RemoveDepartment(ctx context.Context, index uint64) error {
	return c.transact(ctx, "removeDepartment", new(big.Int).SetUint64(index))
}

// ClearDepartments empties the signer institute's department list.
func (c *InstitutionClient) ClearDepartments(ctx context.Context) error {
	return c.transact(ctx, "clearDepartments")
}

// normalizeAddress lowercases a hex address the way cache keys are stored.
func normalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
