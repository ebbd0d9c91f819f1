package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	CertificateRepository CertificateRepository
}

// NewRepositories creates all repositories with the given database pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CertificateRepository: NewCertificateRepository(db),
	}
}
