package dto

import "github.com/nahid/certchain/internal/app/models"

// CacheCertificateRequest is the body of the legacy cache insert endpoint.
// Field names mirror the original wire format exactly.
type CacheCertificateRequest struct {
	CertID           string `json:"certId" binding:"required"`
	InstituteAddress string `json:"instituteAddress"`
	Name             string `json:"name" binding:"required"`
	StudentID        string `json:"studentId" binding:"required"`
	Father           string `json:"father"`
	Mother           string `json:"mother"`
	Degree           string `json:"degree"`
	Department       string `json:"department"`
	CGPA             string `json:"cgpa"`
	Session          string `json:"session"`
	CreatedAt        string `json:"createdAt"`
}

// ToModel converts the request into a cache row.
func (r *CacheCertificateRequest) ToModel() *models.Certificate {
	return &models.Certificate{
		CertID:           r.CertID,
		InstituteAddress: r.InstituteAddress,
		Name:             r.Name,
		StudentID:        r.StudentID,
		Father:           r.Father,
		Mother:           r.Mother,
		Degree:           r.Degree,
		Department:       r.Department,
		CGPA:             r.CGPA,
		Session:          r.Session,
		CreatedAt:        r.CreatedAt,
	}
}

// IssueCertificateRequest is the body of the coordinated issuance endpoint.
// Degree and department are selected by name and resolved to registry
// indices before anything is written.
type IssueCertificateRequest struct {
	Name        string `json:"name" binding:"required" example:"Ayesha Rahman"`
	StudentID   string `json:"studentId" binding:"required" example:"190041234"`
	Father      string `json:"father" example:"Abdur Rahman"`
	Mother      string `json:"mother" example:"Fatima Rahman"`
	Degree      string `json:"degree" binding:"required" example:"B.Sc"`
	Department  string `json:"department" binding:"required" example:"CSE"`
	CGPA        string `json:"cgpa" example:"3.85"`
	Session     string `json:"session" example:"2019-20"`
	ContentHash string `json:"contentHash,omitempty" example:"QmYwAPJzv5CZsnA..."`
}

// UpdateContentHashRequest repoints a certificate at new off-chain content.
type UpdateContentHashRequest struct {
	ContentHash string `json:"contentHash" binding:"required" example:"QmYwAPJzv5CZsnA..."`
}

// IssueCertificateResponse returns the canonical certificate handle.
type IssueCertificateResponse struct {
	CertID string `json:"certId" example:"9f1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d"`
}

// VerificationResponse is the public verification answer. Degree and
// department names are resolved against the institute's current lists at
// query time.
type VerificationResponse struct {
	Exists         bool   `json:"exists" example:"true"`
	Valid          bool   `json:"valid" example:"true"`
	Revoked        bool   `json:"revoked" example:"false"`
	IssuedBy       string `json:"issuedBy,omitempty" example:"0xab5801a7d398351b8be11c439e05c5b3259aec9b"`
	IssueTimestamp int64  `json:"issueTimestamp,omitempty" example:"1718200000"`
	ContentHash    string `json:"contentHash,omitempty"`

	Certificate *CertificateDetail `json:"certificate,omitempty"`
}

// CertificateDetail carries the ledger fields plus the index-resolved
// institute metadata for display.
type CertificateDetail struct {
	CertID          string `json:"certId"`
	Name            string `json:"name"`
	StudentID       string `json:"studentId"`
	Father          string `json:"father"`
	Mother          string `json:"mother"`
	Degree          string `json:"degree"`
	Department      string `json:"department"`
	CGPA            string `json:"cgpa"`
	Session         string `json:"session"`
	CreatedAt       string `json:"createdAt"`
	ContentHash     string `json:"contentHash,omitempty"`
	Revoked         bool   `json:"revoked"`
	InstituteName   string `json:"instituteName,omitempty"`
	InstituteLink   string `json:"instituteLink,omitempty"`
	IssuedBy        string `json:"issuedBy"`
	DegreeIndex     uint64 `json:"degreeIndex"`
	DepartmentIndex uint64 `json:"departmentIndex"`
}
