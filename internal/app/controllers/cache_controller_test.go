package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

const testInstitute = "0xab5801a7d398351b8be11c439e05c5b3259aec9b"

type fakeCacheService struct {
	stored   []*models.Certificate
	storeErr error
	listErr  error
}

func (s *fakeCacheService) Store(ctx context.Context, req *dto.CacheCertificateRequest) (*models.Certificate, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	cert := req.ToModel()
	cert.Status = models.CertificateStatusConfirmed
	s.stored = append(s.stored, cert)
	return cert, nil
}

func (s *fakeCacheService) List(ctx context.Context, instituteAddress, studentID string) ([]*models.Certificate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.Certificate
	for _, cert := range s.stored {
		if strings.EqualFold(cert.InstituteAddress, instituteAddress) {
			out = append(out, cert)
		}
	}
	return out, nil
}

func newCacheRouter(svc *fakeCacheService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewCacheController(svc)
	router.POST("/api/certificates", controller.StoreCertificate)
	router.GET("/api/certificates", controller.ListCertificates)
	return router
}

func TestStoreCertificateSuccess(t *testing.T) {
	svc := &fakeCacheService{}
	router := newCacheRouter(svc)

	body := `{"certId":"cert-1","instituteAddress":"` + testInstitute + `","name":"Ayesha Rahman","studentId":"190041234"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message     string              `json:"message"`
		Certificate *models.Certificate `json:"certificate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Certificate saved successfully", resp.Message)
	require.NotNil(t, resp.Certificate)
	assert.Equal(t, "cert-1", resp.Certificate.CertID)
}

func TestStoreCertificateMissingInstituteAddress(t *testing.T) {
	router := newCacheRouter(&fakeCacheService{})

	body := `{"certId":"cert-1","name":"Ayesha Rahman","studentId":"190041234"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"instituteAddress is required"}`, w.Body.String())
}

func TestStoreCertificateDuplicate(t *testing.T) {
	svc := &fakeCacheService{storeErr: apperrors.ErrDuplicateCertificate}
	router := newCacheRouter(svc)

	body := `{"certId":"cert-1","instituteAddress":"` + testInstitute + `","name":"Ayesha Rahman","studentId":"190041234"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/certificates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// The legacy contract reports duplicates as 400, not 409.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"This student already has a certificate from this institute."}`, w.Body.String())
}

func TestListCertificatesRequiresInstituteAddress(t *testing.T) {
	router := newCacheRouter(&fakeCacheService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"instituteAddress is required"}`, w.Body.String())
}

func TestListCertificatesReturnsBareArray(t *testing.T) {
	svc := &fakeCacheService{stored: []*models.Certificate{
		{CertID: "cert-2", InstituteAddress: testInstitute, StudentID: "200"},
		{CertID: "cert-1", InstituteAddress: testInstitute, StudentID: "100"},
	}}
	router := newCacheRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates?instituteAddress="+testInstitute, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var certs []*models.Certificate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &certs))
	require.Len(t, certs, 2)
	assert.Equal(t, "cert-2", certs[0].CertID)
}

func TestListCertificatesEmptyIsNotNull(t *testing.T) {
	router := newCacheRouter(&fakeCacheService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates?instituteAddress="+testInstitute, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
