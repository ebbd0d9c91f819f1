package services

import (
	"context"
	"strings"
	"time"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// fakeCertRepo is an in-memory CertificateRepository.
type fakeCertRepo struct {
	rows []*models.Certificate

	createErr        error
	existsErr        error
	markConfirmedErr error

	createCalls        int
	markConfirmedCalls int
}

func (r *fakeCertRepo) Create(ctx context.Context, cert *models.Certificate) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	for _, row := range r.rows {
		if strings.EqualFold(row.InstituteAddress, cert.InstituteAddress) &&
			row.StudentID == cert.StudentID && row.Status != models.CertificateStatusFailed {
			return apperrors.ErrDuplicateCertificate
		}
	}
	copied := *cert
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *fakeCertRepo) GetByCertID(ctx context.Context, certID string) (*models.Certificate, error) {
	for _, row := range r.rows {
		if row.CertID == certID {
			return row, nil
		}
	}
	return nil, apperrors.ErrCertificateNotFound
}

func (r *fakeCertRepo) ExistsActive(ctx context.Context, instituteAddress, studentID string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, row := range r.rows {
		if strings.EqualFold(row.InstituteAddress, instituteAddress) &&
			row.StudentID == studentID && row.Status != models.CertificateStatusFailed {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCertRepo) ListByInstitute(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error) {
	var out []*models.Certificate
	for _, row := range r.rows {
		if !strings.EqualFold(row.InstituteAddress, instituteAddress) {
			continue
		}
		if studentID != "" && row.StudentID != studentID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeCertRepo) MarkConfirmed(ctx context.Context, certID string) error {
	r.markConfirmedCalls++
	if r.markConfirmedErr != nil {
		return r.markConfirmedErr
	}
	for _, row := range r.rows {
		if row.CertID == certID && row.Status == models.CertificateStatusPending {
			row.Status = models.CertificateStatusConfirmed
			return nil
		}
	}
	return apperrors.ErrCertificateNotFound
}

func (r *fakeCertRepo) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	var expired int64
	for _, row := range r.rows {
		if row.Status == models.CertificateStatusPending && insertedBefore(row, olderThan) {
			row.Status = models.CertificateStatusFailed
			expired++
		}
	}
	return expired, nil
}

// insertedBefore approximates the inserted_at column with CreatedAt.
func insertedBefore(cert *models.Certificate, cutoff time.Time) bool {
	t, err := time.Parse(time.RFC3339, cert.CreatedAt)
	if err != nil {
		return false
	}
	return t.Before(cutoff)
}

// fakeRegistry is an in-memory InstitutionRegistry keyed by lowercase address.
type fakeRegistry struct {
	institutes map[string]*chain.Institute
	getErr     error
	writeErr   error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{institutes: make(map[string]*chain.Institute)}
}

func (r *fakeRegistry) add(address string, inst chain.Institute) {
	inst.Account = strings.ToLower(address)
	r.institutes[strings.ToLower(address)] = &inst
}

func (r *fakeRegistry) AddInstitute(ctx context.Context, account string, inst chain.Institute) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.add(account, inst)
	return nil
}

func (r *fakeRegistry) GetInstitute(ctx context.Context, account string) (*chain.Institute, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if inst, ok := r.institutes[strings.ToLower(account)]; ok {
		copied := *inst
		return &copied, nil
	}
	// The contract returns zero values for unknown addresses.
	return &chain.Institute{Account: strings.ToLower(account)}, nil
}

func (r *fakeRegistry) HasInstitutePermission(ctx context.Context, account string) (bool, error) {
	if r.getErr != nil {
		return false, r.getErr
	}
	_, ok := r.institutes[strings.ToLower(account)]
	return ok, nil
}

func (r *fakeRegistry) AddDegrees(ctx context.Context, names []string) error        { return r.writeErr }
func (r *fakeRegistry) UpdateDegree(ctx context.Context, i uint64, n string) error  { return r.writeErr }
func (r *fakeRegistry) RemoveDegree(ctx context.Context, i uint64) error            { return r.writeErr }
func (r *fakeRegistry) ClearDegrees(ctx context.Context) error                      { return r.writeErr }
func (r *fakeRegistry) AddDepartments(ctx context.Context, names []string) error    { return r.writeErr }
func (r *fakeRegistry) UpdateDepartment(ctx context.Context, i uint64, n string) error {
	return r.writeErr
}
func (r *fakeRegistry) RemoveDepartment(ctx context.Context, i uint64) error { return r.writeErr }
func (r *fakeRegistry) ClearDepartments(ctx context.Context) error           { return r.writeErr }

// fakeLedger is an in-memory CertificationLedger.
type fakeLedger struct {
	certs map[string]*chain.LedgerCertificate

	generateErr error
	verifyErr   error
	getErr      error
	revokeErr   error

	generateCalls int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{certs: make(map[string]*chain.LedgerCertificate)}
}

func (l *fakeLedger) GenerateCertificate(ctx context.Context, cert chain.LedgerCertificate) error {
	l.generateCalls++
	if l.generateErr != nil {
		return l.generateErr
	}
	copied := cert
	l.certs[cert.CertID] = &copied
	return nil
}

func (l *fakeLedger) VerifyCertificate(ctx context.Context, certID string) (*chain.VerifyResult, error) {
	if l.verifyErr != nil {
		return nil, l.verifyErr
	}
	cert, ok := l.certs[certID]
	if !ok {
		return &chain.VerifyResult{}, nil
	}
	return &chain.VerifyResult{
		Exists:      true,
		Valid:       !cert.Revoked,
		Revoked:     cert.Revoked,
		IssuedBy:    cert.IssuedBy,
		ContentHash: cert.ContentHash,
	}, nil
}

func (l *fakeLedger) GetCertificate(ctx context.Context, certID string) (*chain.LedgerCertificate, error) {
	if l.getErr != nil {
		return nil, l.getErr
	}
	cert, ok := l.certs[certID]
	if !ok {
		return nil, apperrors.ErrCertificateNotFound
	}
	copied := *cert
	return &copied, nil
}

func (l *fakeLedger) RevokeCertificate(ctx context.Context, certID string) error {
	if l.revokeErr != nil {
		return l.revokeErr
	}
	if cert, ok := l.certs[certID]; ok {
		cert.Revoked = true
	}
	return nil
}

func (l *fakeLedger) UpdateCertificateContentHash(ctx context.Context, certID, contentHash string) error {
	if cert, ok := l.certs[certID]; ok {
		cert.ContentHash = contentHash
	}
	return nil
}
