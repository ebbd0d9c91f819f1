package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

const testInstitute = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"

func newIssuanceFixture() (*issuanceService, *fakeCertRepo, *fakeRegistry, *fakeLedger) {
	repo := &fakeCertRepo{}
	registry := newFakeRegistry()
	registry.add(testInstitute, chain.Institute{
		Name:        "Dhaka Institute of Technology",
		Degrees:     []string{"B.Sc", "M.Sc", "B.Sc"},
		Departments: []string{"CSE", "EEE"},
	})
	ledger := newFakeLedger()

	svc := NewIssuanceService(repo, registry, ledger, zerolog.Nop()).(*issuanceService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, registry, ledger
}

func validIssueRequest() *dto.IssueCertificateRequest {
	return &dto.IssueCertificateRequest{
		Name:       "Ayesha Rahman",
		StudentID:  "190041234",
		Father:     "Abdur Rahman",
		Mother:     "Fatima Rahman",
		Degree:     "B.Sc",
		Department: "CSE",
		CGPA:       "3.85",
		Session:    "2019-20",
	}
}

func TestIssueSuccess(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()

	certID, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.NoError(t, err)
	require.NotEmpty(t, certID)

	// Ledger entry carries resolved indices, not names.
	cert := ledger.certs[certID]
	require.NotNil(t, cert)
	assert.Equal(t, uint64(0), cert.DegreeIndex)
	assert.Equal(t, uint64(0), cert.DepartmentIndex)
	assert.Equal(t, "190041234", cert.StudentID)

	// Cache row is confirmed after the ledger write.
	row, err := repo.GetByCertID(context.Background(), certID)
	require.NoError(t, err)
	assert.Equal(t, models.CertificateStatusConfirmed, row.Status)
	assert.Equal(t, testInstitute, row.InstituteAddress)
}

func TestIssueDuplicateStudent(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()

	_, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.NoError(t, err)

	_, err = svc.Issue(context.Background(), testInstitute, validIssueRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCertificate)

	// Only the first attempt reached the stores.
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 1, ledger.generateCalls)
}

func TestIssueUnknownDegreeWritesNothing(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()

	req := validIssueRequest()
	req.Degree = "Ph.D"

	_, err := svc.Issue(context.Background(), testInstitute, req)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, ledger.generateCalls)
}

func TestIssueUnknownDepartmentWritesNothing(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()

	req := validIssueRequest()
	req.Department = "Architecture"

	_, err := svc.Issue(context.Background(), testInstitute, req)
	assert.ErrorIs(t, err, apperrors.ErrUnknownReference)
	assert.Zero(t, repo.createCalls)
	assert.Zero(t, ledger.generateCalls)
}

func TestIssueCacheFailureLeavesLedgerUntouched(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()
	repo.createErr = errors.New("connection refused")

	_, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.Error(t, err)
	assert.Zero(t, ledger.generateCalls)
}

func TestIssueLedgerFailureLeavesPendingRow(t *testing.T) {
	svc, repo, _, ledger := newIssuanceFixture()
	ledger.generateErr = apperrors.NewChainWriteError("insufficient funds")

	_, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	assert.ErrorIs(t, err, apperrors.ErrChainWrite)

	// The pending cache row is not rolled back.
	require.Len(t, repo.rows, 1)
	assert.Equal(t, models.CertificateStatusPending, repo.rows[0].Status)

	// And it blocks a retry for the same student until expired.
	_, err = svc.Issue(context.Background(), testInstitute, validIssueRequest())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCertificate)
}

func TestIssueMarkConfirmedFailureStillSucceeds(t *testing.T) {
	svc, repo, _, _ := newIssuanceFixture()
	repo.markConfirmedErr = errors.New("connection reset")

	certID, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.NoError(t, err)
	require.NotEmpty(t, certID)

	row, err := repo.GetByCertID(context.Background(), certID)
	require.NoError(t, err)
	assert.Equal(t, models.CertificateStatusPending, row.Status)
}

func TestIssueUnregisteredInstitute(t *testing.T) {
	svc, _, _, _ := newIssuanceFixture()

	_, err := svc.Issue(context.Background(), "0x00000000000000000000000000000000000000aa", validIssueRequest())
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestIssueValidation(t *testing.T) {
	svc, repo, _, _ := newIssuanceFixture()

	tests := []struct {
		name   string
		mutate func(*dto.IssueCertificateRequest)
	}{
		{"missing name", func(r *dto.IssueCertificateRequest) { r.Name = " " }},
		{"missing student id", func(r *dto.IssueCertificateRequest) { r.StudentID = "" }},
		{"missing degree", func(r *dto.IssueCertificateRequest) { r.Degree = "" }},
		{"missing department", func(r *dto.IssueCertificateRequest) { r.Department = "" }},
		{"bad cgpa", func(r *dto.IssueCertificateRequest) { r.CGPA = "9.99" }},
		{"bad session", func(r *dto.IssueCertificateRequest) { r.Session = "2019" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validIssueRequest()
			tt.mutate(req)

			_, err := svc.Issue(context.Background(), testInstitute, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	assert.Zero(t, repo.createCalls)
}

func TestResolveListIndexFirstMatchWins(t *testing.T) {
	// The fixture registry lists "B.Sc" at indices 0 and 2.
	index, ok := resolveListIndex([]string{"B.Sc", "M.Sc", "B.Sc"}, "B.Sc")
	require.True(t, ok)
	assert.Equal(t, uint64(0), index)

	_, ok = resolveListIndex([]string{"B.Sc"}, "b.sc")
	assert.False(t, ok, "matching is exact, not case-insensitive")

	_, ok = resolveListIndex(nil, "B.Sc")
	assert.False(t, ok)
}

func TestRevoke(t *testing.T) {
	svc, _, _, ledger := newIssuanceFixture()

	certID, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.NoError(t, err)
	ledger.certs[certID].IssuedBy = testInstitute

	// Another institute cannot revoke.
	err = svc.Revoke(context.Background(), "0x00000000000000000000000000000000000000aa", certID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Revoke(context.Background(), testInstitute, certID))
	assert.True(t, ledger.certs[certID].Revoked)

	// Revoking twice fails.
	err = svc.Revoke(context.Background(), testInstitute, certID)
	assert.ErrorIs(t, err, apperrors.ErrCertificateRevoked)

	// Unknown certificate.
	err = svc.Revoke(context.Background(), testInstitute, "no-such-cert")
	assert.ErrorIs(t, err, apperrors.ErrCertificateNotFound)
}

func TestUpdateContentHash(t *testing.T) {
	svc, _, _, ledger := newIssuanceFixture()

	certID, err := svc.Issue(context.Background(), testInstitute, validIssueRequest())
	require.NoError(t, err)
	ledger.certs[certID].IssuedBy = testInstitute

	err = svc.UpdateContentHash(context.Background(), "0x00000000000000000000000000000000000000aa", certID, "QmNew")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.UpdateContentHash(context.Background(), testInstitute, certID, "QmNew"))
	assert.Equal(t, "QmNew", ledger.certs[certID].ContentHash)

	err = svc.UpdateContentHash(context.Background(), testInstitute, certID, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
