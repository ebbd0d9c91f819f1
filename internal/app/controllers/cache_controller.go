package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/models"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/services"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// CacheController serves the legacy cache endpoints under /api/certificates.
// These predate the versioned API and keep their original wire format: no
// response envelope, errors as {"error": "..."} and duplicates reported with
// status 400 rather than 409.
type CacheController struct {
	cacheService services.CacheService
}

// NewCacheController creates a new CacheController
func NewCacheController(cacheService services.CacheService) *CacheController {
	return &CacheController{
		cacheService: cacheService,
	}
}

// StoreCertificate handles direct cache inserts
// @Summary Cache an issued certificate
// @Description Stores a certificate record in the cache for listing and duplicate checks
// @Tags cache
// @Accept json
// @Produce json
// @Param request body dto.CacheCertificateRequest true "Certificate record"
// @Success 201 {object} map[string]interface{} "Certificate cached successfully"
// @Failure 400 {object} map[string]string "Missing fields or duplicate certificate"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/certificates [post]
func (c *CacheController) StoreCertificate(ctx *gin.Context) {
	var req dto.CacheCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "certId, name and studentId are required"})
		return
	}

	if strings.TrimSpace(req.InstituteAddress) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "instituteAddress is required"})
		return
	}

	cert, err := c.cacheService.Store(ctx, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCertificate) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "This student already has a certificate from this institute."})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Certificate saved successfully",
		"certificate": cert,
	})
}

// ListCertificates handles cache listings
// @Summary List cached certificates
// @Description Lists an institute's cached certificates, newest first, optionally filtered by student
// @Tags cache
// @Produce json
// @Param instituteAddress query string true "Institute wallet address"
// @Param studentId query string false "Filter by student ID"
// @Success 200 {array} models.Certificate "Cached certificates"
// @Failure 400 {object} map[string]string "Missing instituteAddress"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/certificates [get]
func (c *CacheController) ListCertificates(ctx *gin.Context) {
	instituteAddress := ctx.Query("instituteAddress")
	if strings.TrimSpace(instituteAddress) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "instituteAddress is required"})
		return
	}

	certificates, err := c.cacheService.List(ctx, instituteAddress, ctx.Query("studentId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The legacy contract is a bare array, never null.
	if certificates == nil {
		certificates = []*models.Certificate{}
	}

	ctx.JSON(http.StatusOK, certificates)
}
