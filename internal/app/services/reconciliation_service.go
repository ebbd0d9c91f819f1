package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nahid/certchain/internal/app/repositories"
)

// ReconciliationService sweeps the cache for pending rows whose ledger
// transaction never confirmed and marks them failed, which releases the
// (institute, student) pair for a fresh issuance attempt.
type ReconciliationService struct {
	certRepo   repositories.CertificateRepository
	interval   time.Duration
	pendingTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReconciliationService creates a new reconciliation sweeper.
func NewReconciliationService(certRepo repositories.CertificateRepository, interval, pendingTTL time.Duration, lgr zerolog.Logger) *ReconciliationService {
	return &ReconciliationService{
		certRepo:   certRepo,
		interval:   interval,
		pendingTTL: pendingTTL,
		logger:     lgr.With().Str("service", "reconciliation").Logger(),
		now:        time.Now,
	}
}

// Run executes expiry sweeps on a ticker until ctx is cancelled.
func (s *ReconciliationService) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("pendingTTL", s.pendingTTL).
		Msg("Reconciliation sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Reconciliation sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.ExpireOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Reconciliation sweep failed")
			}
		}
	}
}

// ExpireOnce runs a single sweep and returns the number of rows expired.
func (s *ReconciliationService) ExpireOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.pendingTTL)

	expired, err := s.certRepo.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.Warn().
			Int64("expired", expired).
			Time("cutoff", cutoff).
			Msg("Expired stale pending certificates")
	}

	return expired, nil
}
