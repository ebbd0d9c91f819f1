package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/pkg/apperrors"
	"github.com/nahid/certchain/internal/pkg/dberrors"
)

// Certificate repository error types
var (
	ErrCertificateNotFound = errors.New("certificate not found")
)

// uniqueActivePairConstraint is the partial unique index guarding the
// one-active-certificate-per-(institute, student) invariant. It must live in
// the database, not the application, to hold under concurrent inserts.
const uniqueActivePairConstraint = "certificates_institute_student_active_key"

// CertificateRepository is the cache store interface consumed by the
// issuance coordinator and the listing API.
type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByCertID(ctx context.Context, certID string) (*models.Certificate, error)
	ExistsActive(ctx context.Context, instituteAddress, studentID string) (bool, error)
	ListByInstitute(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error)
	MarkConfirmed(ctx context.Context, certID string) error
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// PgCertificateRepository handles database operations for cached certificates.
type PgCertificateRepository struct {
	db *pgxpool.Pool
}

var _ CertificateRepository = (*PgCertificateRepository)(nil)

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *pgxpool.Pool) *PgCertificateRepository {
	return &PgCertificateRepository{
		db: db,
	}
}

// Create inserts a new cache row in pending state. A unique violation on the
// active (institute, student) pair maps to ErrDuplicateCertificate so a lost
// race surfaces the same way a failed pre-check would.
func (r *PgCertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	query := `
		INSERT INTO certificates
			(cert_id, institute_address, name, student_id, father, mother,
			 degree, department, cgpa, session, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	if cert.Status == "" {
		cert.Status = models.CertificateStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		cert.CertID,
		strings.ToLower(cert.InstituteAddress),
		cert.Name,
		cert.StudentID,
		cert.Father,
		cert.Mother,
		cert.Degree,
		cert.Department,
		cert.CGPA,
		cert.Session,
		cert.CreatedAt,
		cert.Status,
	).Scan(&cert.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uniqueActivePairConstraint) {
			return apperrors.ErrDuplicateCertificate
		}
		return fmt.Errorf("%w: %s", apperrors.ErrCachePersistence, err)
	}

	return nil
}

// GetByCertID retrieves a cache row by its certificate ID.
func (r *PgCertificateRepository) GetByCertID(ctx context.Context, certID string) (*models.Certificate, error) {
	query := `
		SELECT id, cert_id, institute_address, name, student_id, father, mother,
		       degree, department, cgpa, session, created_at, status
		FROM certificates
		WHERE cert_id = $1
	`

	var cert models.Certificate
	err := r.db.QueryRow(ctx, query, certID).Scan(
		&cert.ID,
		&cert.CertID,
		&cert.InstituteAddress,
		&cert.Name,
		&cert.StudentID,
		&cert.Father,
		&cert.Mother,
		&cert.Degree,
		&cert.Department,
		&cert.CGPA,
		&cert.Session,
		&cert.CreatedAt,
		&cert.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}

	return &cert, nil
}

// ExistsActive checks whether a non-failed cache row exists for the
// (institute, student) pair. Addresses are compared lowercase.
func (r *PgCertificateRepository) ExistsActive(ctx context.Context, instituteAddress, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM certificates
			WHERE institute_address = $1 AND student_id = $2 AND status <> $3
		)`,
		strings.ToLower(instituteAddress), studentID, models.CertificateStatusFailed).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking certificate existence: %w", err)
	}

	return exists, nil
}

// ListByInstitute returns all cache rows for an institute, newest first.
// The studentID filter is optional and matched exactly.
func (r *PgCertificateRepository) ListByInstitute(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error) {
	query := `
		SELECT id, cert_id, institute_address, name, student_id, father, mother,
		       degree, department, cgpa, session, created_at, status
		FROM certificates
		WHERE institute_address = $1
	`
	args := []interface{}{strings.ToLower(instituteAddress)}

	if studentID != "" {
		query += ` AND student_id = $2`
		args = append(args, studentID)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		var cert models.Certificate
		if err := rows.Scan(
			&cert.ID,
			&cert.CertID,
			&cert.InstituteAddress,
			&cert.Name,
			&cert.StudentID,
			&cert.Father,
			&cert.Mother,
			&cert.Degree,
			&cert.Department,
			&cert.CGPA,
			&cert.Session,
			&cert.CreatedAt,
			&cert.Status,
		); err != nil {
			return nil, err
		}
		certificates = append(certificates, &cert)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return certificates, nil
}

// MarkConfirmed transitions a pending row to confirmed after the chain
// transaction is mined.
func (r *PgCertificateRepository) MarkConfirmed(ctx context.Context, certID string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE certificates SET status = $1 WHERE cert_id = $2 AND status = $3`,
		models.CertificateStatusConfirmed, certID, models.CertificateStatusPending)

	if err != nil {
		return fmt.Errorf("error confirming certificate: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCertificateNotFound
	}

	return nil
}

// ExpirePending marks pending rows inserted before the cutoff as failed,
// freeing their (institute, student) pair for a fresh attempt. Returns the
// number of rows expired.
func (r *PgCertificateRepository) ExpirePending(ctx context.Context, olderThan time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE certificates SET status = $1
		WHERE status = $2 AND inserted_at < $3`,
		models.CertificateStatusFailed, models.CertificateStatusPending, olderThan)

	if err != nil {
		return 0, fmt.Errorf("error expiring pending certificates: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
