package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/repositories"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// CacheService exposes the raw cache store: direct inserts of already-issued
// certificates and per-institute listings. Listings read only the cache, so a
// row can appear here whose ledger transaction never confirmed.
type CacheService interface {
	Store(ctx context.Context, req *dto.CacheCertificateRequest) (*models.Certificate, error)
	List(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error)
}

type cacheService struct {
	certRepo repositories.CertificateRepository
	logger   zerolog.Logger
}

// NewCacheService creates a new cache service.
func NewCacheService(certRepo repositories.CertificateRepository, lgr zerolog.Logger) CacheService {
	return &cacheService{
		certRepo: certRepo,
		logger:   lgr.With().Str("service", "cache").Logger(),
	}
}

// Store inserts a certificate record directly into the cache. The row is
// stored as confirmed since the caller asserts the ledger write already
// happened.
func (s *cacheService) Store(ctx context.Context, req *dto.CacheCertificateRequest) (*models.Certificate, error) {
	exists, err := s.certRepo.ExistsActive(ctx, req.InstituteAddress, req.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateCertificate
	}

	cert := req.ToModel()
	cert.Status = models.CertificateStatusConfirmed

	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("certId", cert.CertID).
		Str("institute", cert.InstituteAddress).
		Msg("Certificate cached")

	return cert, nil
}

// List returns the institute's cached certificates, newest first, optionally
// filtered to one student.
func (s *cacheService) List(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error) {
	if strings.TrimSpace(instituteAddress) == "" {
		return nil, apperrors.NewValidationError("instituteAddress is required")
	}

	return s.certRepo.ListByInstitute(ctx, instituteAddress, studentID)
}
