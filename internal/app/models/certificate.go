package models

// Certificate status values for the cache row lifecycle. A row is created
// pending, marked confirmed once the chain transaction is mined, and expired
// to failed by the reconciler if confirmation never arrives.
const (
	CertificateStatusPending   = "pending"
	CertificateStatusConfirmed = "confirmed"
	CertificateStatusFailed    = "failed"
)

// Certificate is the cache representation of an issued certificate. It is a
// denormalized copy for listing and duplicate checks only; the ledger is
// authoritative. All descriptive fields are strings, including cgpa and
// createdAt, matching the wire format certificates are issued with.
type Certificate struct {
	ID               int64  `json:"-"`
	CertID           string `json:"certId"`
	InstituteAddress string `json:"instituteAddress"`
	Name             string `json:"name"`
	StudentID        string `json:"studentId"`
	Father           string `json:"father"`
	Mother           string `json:"mother"`
	Degree           string `json:"degree"`
	Department       string `json:"department"`
	CGPA             string `json:"cgpa"`
	Session          string `json:"session"`
	CreatedAt        string `json:"createdAt"`
	Status           string `json:"status"`
}
