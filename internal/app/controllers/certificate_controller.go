package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/services"
	"github.com/nahid/certchain/internal/middleware"
)

// CertificateController handles certificate issuance, verification and
// revocation under /api/v1.
type CertificateController struct {
	issuanceService     services.IssuanceService
	verificationService services.VerificationService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(issuanceService services.IssuanceService, verificationService services.VerificationService) *CertificateController {
	return &CertificateController{
		issuanceService:     issuanceService,
		verificationService: verificationService,
	}
}

// IssueCertificate handles coordinated certificate issuance
// @Summary Issue a certificate
// @Description Issues a new certificate: caches a pending record, writes it to the ledger and confirms the cache row
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueCertificateRequest true "Certificate data"
// @Success 201 {object} dto.APIResponse{data=dto.IssueCertificateResponse} "Certificate issued successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown degree/department"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Student already holds a certificate from this institute"
// @Failure 500 {object} dto.ErrorResponse "Cache write failed"
// @Failure 502 {object} dto.ErrorResponse "Ledger transaction failed"
// @Router /certificates [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	instituteAddress, ok := middleware.InstituteAddress(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	certID, err := c.issuanceService.Issue(ctx, instituteAddress, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.IssueCertificateResponse{CertID: certID},
		Timestamp: time.Now(),
	})
}

// VerifyCertificate handles public certificate verification
// @Summary Verify a certificate
// @Description Checks a certId against the ledger and returns validity plus resolved certificate data
// @Tags certificates
// @Produce json
// @Param certId path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.VerificationResponse} "Verification result"
// @Failure 400 {object} dto.ErrorResponse "Missing certId"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificates/{certId}/verify [get]
func (c *CertificateController) VerifyCertificate(ctx *gin.Context) {
	result, err := c.verificationService.Verify(ctx, ctx.Param("certId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetCertificate handles the public certificate detail view
// @Summary Get certificate detail
// @Description Returns the full ledger record with degree and department names resolved
// @Tags certificates
// @Produce json
// @Param certId path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateDetail} "Certificate detail"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /certificates/{certId} [get]
func (c *CertificateController) GetCertificate(ctx *gin.Context) {
	detail, err := c.verificationService.Get(ctx, ctx.Param("certId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// UpdateContentHash handles certificate content hash updates
// @Summary Update certificate content hash
// @Description Points a ledger certificate at new off-chain content; only the issuing institute may update
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param certId path string true "Certificate ID"
// @Param request body dto.UpdateContentHashRequest true "New content hash"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Content hash updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Certificate issued by a different institute"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 502 {object} dto.ErrorResponse "Ledger transaction failed"
// @Router /certificates/{certId}/content-hash [put]
func (c *CertificateController) UpdateContentHash(ctx *gin.Context) {
	instituteAddress, ok := middleware.InstituteAddress(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateContentHashRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	err := c.issuanceService.UpdateContentHash(ctx, instituteAddress, ctx.Param("certId"), req.ContentHash)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Content hash updated successfully"},
		Timestamp: time.Now(),
	})
}

// RevokeCertificate handles certificate revocation
// @Summary Revoke a certificate
// @Description Marks a ledger certificate invalid; only the issuing institute may revoke
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param certId path string true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Certificate revoked"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Certificate issued by a different institute"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Failure 410 {object} dto.ErrorResponse "Certificate already revoked"
// @Failure 502 {object} dto.ErrorResponse "Ledger transaction failed"
// @Router /certificates/{certId}/revoke [post]
func (c *CertificateController) RevokeCertificate(ctx *gin.Context) {
	instituteAddress, ok := middleware.InstituteAddress(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.issuanceService.Revoke(ctx, instituteAddress, ctx.Param("certId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Certificate revoked successfully"},
		Timestamp: time.Now(),
	})
}
