package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// VerificationService answers certificate queries from the ledger alone.
// The cache is never consulted: a cache row with no ledger entry is not a
// certificate.
type VerificationService interface {
	Verify(ctx context.Context, certID string) (*dto.VerificationResponse, error)
	Get(ctx context.Context, certID string) (*dto.CertificateDetail, error)
}

type verificationService struct {
	registry chain.InstitutionRegistry
	ledger   chain.CertificationLedger
	logger   zerolog.Logger
}

// NewVerificationService creates a new verification service.
func NewVerificationService(registry chain.InstitutionRegistry, ledger chain.CertificationLedger, lgr zerolog.Logger) VerificationService {
	return &verificationService{
		registry: registry,
		ledger:   ledger,
		logger:   lgr.With().Str("service", "verification").Logger(),
	}
}

// Verify reports existence, validity and content for a certId. A missing
// ledger entry yields Exists=false regardless of any cache state.
func (s *verificationService) Verify(ctx context.Context, certID string) (*dto.VerificationResponse, error) {
	if strings.TrimSpace(certID) == "" {
		return nil, apperrors.NewValidationError("certId is required")
	}

	result, err := s.ledger.VerifyCertificate(ctx, certID)
	if err != nil {
		return nil, err
	}

	if !result.Exists {
		return &dto.VerificationResponse{Exists: false}, nil
	}

	response := &dto.VerificationResponse{
		Exists:         true,
		Valid:          result.Valid,
		Revoked:        result.Revoked,
		IssuedBy:       result.IssuedBy,
		IssueTimestamp: result.IssueTimestamp,
		ContentHash:    result.ContentHash,
	}

	detail, err := s.buildDetail(ctx, certID)
	if err != nil {
		// The existence answer stands even if the detail read fails.
		s.logger.Warn().Err(err).Str("certId", certID).Msg("Failed to load certificate detail")
		return response, nil
	}
	response.Certificate = detail

	return response, nil
}

// Get returns the full ledger record for the /certificate/{certId} view.
func (s *verificationService) Get(ctx context.Context, certID string) (*dto.CertificateDetail, error) {
	if strings.TrimSpace(certID) == "" {
		return nil, apperrors.NewValidationError("certId is required")
	}

	result, err := s.ledger.VerifyCertificate(ctx, certID)
	if err != nil {
		return nil, err
	}
	if !result.Exists {
		return nil, apperrors.ErrCertificateNotFound
	}

	return s.buildDetail(ctx, certID)
}

// buildDetail reads the ledger record and dereferences the stored degree and
// department indices into the institute's *current* lists. If a list was
// edited after issuance the displayed name shifts accordingly; an index past
// the end of the list resolves to an empty name.
func (s *verificationService) buildDetail(ctx context.Context, certID string) (*dto.CertificateDetail, error) {
	cert, err := s.ledger.GetCertificate(ctx, certID)
	if err != nil {
		return nil, err
	}

	detail := &dto.CertificateDetail{
		CertID:          cert.CertID,
		Name:            cert.Name,
		StudentID:       cert.StudentID,
		Father:          cert.Father,
		Mother:          cert.Mother,
		CGPA:            cert.CGPA,
		Session:         cert.Session,
		CreatedAt:       cert.CreatedAt,
		ContentHash:     cert.ContentHash,
		Revoked:         cert.Revoked,
		IssuedBy:        cert.IssuedBy,
		DegreeIndex:     cert.DegreeIndex,
		DepartmentIndex: cert.DepartmentIndex,
	}

	institute, err := s.registry.GetInstitute(ctx, cert.IssuedBy)
	if err != nil {
		s.logger.Warn().Err(err).Str("certId", certID).Msg("Failed to resolve issuing institute")
		return detail, nil
	}

	detail.InstituteName = institute.Name
	detail.InstituteLink = institute.Link
	detail.Degree = resolveListName(institute.Degrees, cert.DegreeIndex)
	detail.Department = resolveListName(institute.Departments, cert.DepartmentIndex)

	return detail, nil
}

// resolveListName dereferences a stored index into the current list.
func resolveListName(list []string, index uint64) string {
	if index >= uint64(len(list)) {
		return ""
	}
	return list[index]
}
