package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahid/certchain/internal/app/models"
)

func TestExpireOnce(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeCertRepo{rows: []*models.Certificate{
		{
			CertID:           "stale-pending",
			InstituteAddress: testInstitute,
			StudentID:        "100",
			Status:           models.CertificateStatusPending,
			CreatedAt:        now.Add(-2 * time.Hour).Format(time.RFC3339),
		},
		{
			CertID:           "fresh-pending",
			InstituteAddress: testInstitute,
			StudentID:        "200",
			Status:           models.CertificateStatusPending,
			CreatedAt:        now.Add(-5 * time.Minute).Format(time.RFC3339),
		},
		{
			CertID:           "old-confirmed",
			InstituteAddress: testInstitute,
			StudentID:        "300",
			Status:           models.CertificateStatusConfirmed,
			CreatedAt:        now.Add(-3 * time.Hour).Format(time.RFC3339),
		},
	}}

	svc := NewReconciliationService(repo, time.Minute, 30*time.Minute, zerolog.Nop())
	svc.now = func() time.Time { return now }

	expired, err := svc.ExpireOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	assert.Equal(t, models.CertificateStatusFailed, repo.rows[0].Status)
	assert.Equal(t, models.CertificateStatusPending, repo.rows[1].Status)
	assert.Equal(t, models.CertificateStatusConfirmed, repo.rows[2].Status)

	// The freed pair is issuable again.
	exists, err := repo.ExistsActive(context.Background(), testInstitute, "100")
	require.NoError(t, err)
	assert.False(t, exists)

	// A second sweep finds nothing new.
	expired, err = svc.ExpireOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
}
