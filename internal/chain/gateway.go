package chain

import (
	"context"
)

// Institute is the registry-side record for an issuing institution. Degrees
// and departments are ordered lists; certificates reference entries by index,
// so mutating a list changes what already-issued certificates display.
type Institute struct {
	Account         string   `json:"account"`
	Name            string   `json:"name"`
	PhysicalAddress string   `json:"physicalAddress"`
	Acronym         string   `json:"acronym"`
	Link            string   `json:"link"`
	Degrees         []string `json:"degrees"`
	Departments     []string `json:"departments"`
}

// LedgerCertificate is the canonical on-chain certificate record.
type LedgerCertificate struct {
	CertID          string `json:"certId"`
	Name            string `json:"name"`
	StudentID       string `json:"studentId"`
	Father          string `json:"father"`
	Mother          string `json:"mother"`
	DegreeIndex     uint64 `json:"degreeIndex"`
	DepartmentIndex uint64 `json:"departmentIndex"`
	CGPA            string `json:"cgpa"`
	Session         string `json:"session"`
	CreatedAt       string `json:"createdAt"`
	ContentHash     string `json:"contentHash"`
	IssuedBy        string `json:"issuedBy"`
	Revoked         bool   `json:"revoked"`
}

// VerifyResult is the ledger's answer to an existence/validity query.
type VerifyResult struct {
	Exists         bool   `json:"exists"`
	Valid          bool   `json:"valid"`
	Revoked        bool   `json:"revoked"`
	IssuedBy       string `json:"issuedBy"`
	ContentHash    string `json:"contentHash"`
	IssueTimestamp int64  `json:"issueTimestamp"`
}

// InstitutionRegistry exposes typed operations against the institution
// registry contract. All writes are submitted by the injected signer and
// awaited until block inclusion.
type InstitutionRegistry interface {
	AddInstitute(ctx context.Context, account string, inst Institute) error
	GetInstitute(ctx context.Context, account string) (*Institute, error)
	HasInstitutePermission(ctx context.Context, account string) (bool, error)

	AddDegrees(ctx context.Context, names []string) error
	UpdateDegree(ctx context.Context, index uint64, name string) error
	RemoveDegree(ctx context.Context, index uint64) error
	ClearDegrees(ctx context.Context) error

	AddDepartments(ctx context.Context, names []string) error
	UpdateDepartment(ctx context.Context, index uint64, name string) error
	RemoveDepartment(ctx context.Context, index uint64) error
	ClearDepartments(ctx context.Context) error
}

// CertificationLedger exposes typed operations against the certification
// ledger contract. The ledger is the sole source of truth for certificate
// existence and validity.
type CertificationLedger interface {
	GenerateCertificate(ctx context.Context, cert LedgerCertificate) error
	VerifyCertificate(ctx context.Context, certID string) (*VerifyResult, error)
	GetCertificate(ctx context.Context, certID string) (*LedgerCertificate, error)
	RevokeCertificate(ctx context.Context, certID string) error
	UpdateCertificateContentHash(ctx context.Context, certID, contentHash string) error
}
