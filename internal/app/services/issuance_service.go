package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/repositories"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
	"github.com/nahid/certchain/internal/pkg/validation"
)

// IssuanceService coordinates the dual write of a new certificate: cache
// first as a pre-commit record, then the ledger as the source of truth.
type IssuanceService interface {
	Issue(ctx context.Context, instituteAddress string, req *dto.IssueCertificateRequest) (string, error)
	Revoke(ctx context.Context, instituteAddress, certID string) error
	UpdateContentHash(ctx context.Context, instituteAddress, certID, contentHash string) error
}

type issuanceService struct {
	certRepo repositories.CertificateRepository
	registry chain.InstitutionRegistry
	ledger   chain.CertificationLedger
	logger   zerolog.Logger
	now      func() time.Time
}

// NewIssuanceService creates a new issuance coordinator.
func NewIssuanceService(certRepo repositories.CertificateRepository, registry chain.InstitutionRegistry, ledger chain.CertificationLedger, lgr zerolog.Logger) IssuanceService {
	return &issuanceService{
		certRepo: certRepo,
		registry: registry,
		ledger:   ledger,
		logger:   lgr.With().Str("service", "issuance").Logger(),
		now:      time.Now,
	}
}

// Issue produces a new certificate. The protocol is strictly sequential with
// no retries and no compensation:
//
//  1. validate input locally
//  2. resolve degree/department names to registry indices
//  3. reject if an active cache row exists for (institute, student)
//  4. insert the cache row in pending state
//  5. submit the ledger transaction and await confirmation
//  6. mark the cache row confirmed and return the certId
//
// If step 5 fails the cache row from step 4 is left behind as an orphan; the
// reconciler may later expire it, but Issue itself never rolls back.
func (s *issuanceService) Issue(ctx context.Context, instituteAddress string, req *dto.IssueCertificateRequest) (string, error) {
	if err := validateIssueRequest(req); err != nil {
		return "", err
	}

	instituteAddress = strings.ToLower(instituteAddress)

	institute, err := s.registry.GetInstitute(ctx, instituteAddress)
	if err != nil {
		return "", err
	}
	if institute == nil || institute.Name == "" {
		return "", apperrors.ErrInstituteNotFound
	}

	degreeIndex, ok := resolveListIndex(institute.Degrees, req.Degree)
	if !ok {
		return "", apperrors.NewCustomError(apperrors.ErrUnknownReference, "Invalid Degree or Department selection")
	}
	departmentIndex, ok := resolveListIndex(institute.Departments, req.Department)
	if !ok {
		return "", apperrors.NewCustomError(apperrors.ErrUnknownReference, "Invalid Degree or Department selection")
	}

	exists, err := s.certRepo.ExistsActive(ctx, instituteAddress, req.StudentID)
	if err != nil {
		return "", apperrors.NewCustomError(apperrors.ErrCachePersistence, err.Error())
	}
	if exists {
		return "", apperrors.ErrDuplicateCertificate
	}

	certID := uuid.New().String()
	createdAt := s.now().UTC().Format(time.RFC3339)

	record := &models.Certificate{
		CertID:           certID,
		InstituteAddress: instituteAddress,
		Name:             req.Name,
		StudentID:        req.StudentID,
		Father:           req.Father,
		Mother:           req.Mother,
		Degree:           req.Degree,
		Department:       req.Department,
		CGPA:             req.CGPA,
		Session:          req.Session,
		CreatedAt:        createdAt,
		Status:           models.CertificateStatusPending,
	}

	// Cache write comes first: failing here is cheap, failing after the
	// chain transaction is not.
	if err := s.certRepo.Create(ctx, record); err != nil {
		return "", err
	}

	ledgerCert := chain.LedgerCertificate{
		CertID:          certID,
		Name:            req.Name,
		StudentID:       req.StudentID,
		Father:          req.Father,
		Mother:          req.Mother,
		DegreeIndex:     degreeIndex,
		DepartmentIndex: departmentIndex,
		CGPA:            req.CGPA,
		Session:         req.Session,
		CreatedAt:       createdAt,
		ContentHash:     req.ContentHash,
	}

	if err := s.ledger.GenerateCertificate(ctx, ledgerCert); err != nil {
		// The pending cache row is now an orphan. It is deliberately not
		// deleted here; the reconciler expires it after its TTL.
		s.logger.Error().Err(err).
			Str("certId", certID).
			Str("institute", instituteAddress).
			Str("studentId", req.StudentID).
			Msg("Ledger write failed, cache row left pending")
		return "", err
	}

	if err := s.certRepo.MarkConfirmed(ctx, certID); err != nil {
		// The certificate is on chain; a stale pending status only affects
		// the cache's bookkeeping, so the issuance still succeeds.
		s.logger.Warn().Err(err).Str("certId", certID).Msg("Failed to mark cache row confirmed")
	}

	s.logger.Info().
		Str("certId", certID).
		Str("institute", instituteAddress).
		Str("studentId", req.StudentID).
		Msg("Certificate issued")

	return certID, nil
}

// Revoke marks a ledger certificate invalid. Only the issuing institute may
// revoke, and only certificates that exist.
func (s *issuanceService) Revoke(ctx context.Context, instituteAddress, certID string) error {
	if strings.TrimSpace(certID) == "" {
		return apperrors.NewValidationError("certId is required")
	}

	result, err := s.ledger.VerifyCertificate(ctx, certID)
	if err != nil {
		return err
	}
	if !result.Exists {
		return apperrors.ErrCertificateNotFound
	}
	if !strings.EqualFold(result.IssuedBy, instituteAddress) {
		return apperrors.ErrPermissionDenied
	}
	if result.Revoked {
		return apperrors.ErrCertificateRevoked
	}

	if err := s.ledger.RevokeCertificate(ctx, certID); err != nil {
		return err
	}

	s.logger.Info().Str("certId", certID).Str("institute", strings.ToLower(instituteAddress)).Msg("Certificate revoked")
	return nil
}

// UpdateContentHash points a ledger certificate at new off-chain content.
// Same ownership rules as Revoke.
func (s *issuanceService) UpdateContentHash(ctx context.Context, instituteAddress, certID, contentHash string) error {
	if strings.TrimSpace(certID) == "" {
		return apperrors.NewValidationError("certId is required")
	}
	if strings.TrimSpace(contentHash) == "" {
		return apperrors.NewValidationError("contentHash is required")
	}

	result, err := s.ledger.VerifyCertificate(ctx, certID)
	if err != nil {
		return err
	}
	if !result.Exists {
		return apperrors.ErrCertificateNotFound
	}
	if !strings.EqualFold(result.IssuedBy, instituteAddress) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.ledger.UpdateCertificateContentHash(ctx, certID, contentHash); err != nil {
		return err
	}

	s.logger.Info().Str("certId", certID).Msg("Certificate content hash updated")
	return nil
}

// validateIssueRequest enforces the fail-fast business rule: the request is
// rejected locally before any network call is made.
func validateIssueRequest(req *dto.IssueCertificateRequest) error {
	if req == nil {
		return apperrors.NewValidationError("request body is required")
	}

	nameOK := validation.NewStringValidation(strings.TrimSpace(req.Name)).
		WithMinLength(validation.NameMinLength).
		WithMaxLength(validation.NameMaxLength).
		Validate()
	if !nameOK {
		return apperrors.NewValidationError("student name is required")
	}

	if strings.TrimSpace(req.StudentID) == "" {
		return apperrors.NewValidationError("student ID is required")
	}
	if strings.TrimSpace(req.Degree) == "" || strings.TrimSpace(req.Department) == "" {
		return apperrors.NewValidationError("degree and department are required")
	}

	cgpaOK := validation.NewStringValidation(req.CGPA).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.CGPA).
		Validate()
	if !cgpaOK {
		return apperrors.NewValidationError("cgpa must be a number between 0 and 5 with up to two decimals")
	}

	sessionOK := validation.NewStringValidation(req.Session).
		WithRequired(false).
		WithPattern(validation.CompiledPatterns.Session).
		Validate()
	if !sessionOK {
		return apperrors.NewValidationError("session must look like 2019-20")
	}

	return nil
}

// resolveListIndex finds the index of name in list by exact string match.
// When the list holds duplicate names the first match wins.
func resolveListIndex(list []string, name string) (uint64, bool) {
	for i, entry := range list {
		if entry == name {
			return uint64(i), true
		}
	}
	return 0, false
}
