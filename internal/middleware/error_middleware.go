package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Every controller
// funnels its service errors through here so the status codes stay in one
// place.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message),
		})

	case errors.Is(err, apperrors.ErrUnknownReference):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnknownReference, "Invalid Degree or Department selection"),
		})

	case errors.Is(err, apperrors.ErrInvalidAddress):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidAddress, message),
		})

	case errors.Is(err, apperrors.ErrInvalidListIndex):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Degree or department index out of range"),
		})

	case errors.Is(err, apperrors.ErrInvalidSignature),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidSignature, "Signature verification failed"),
		})

	case errors.Is(err, apperrors.ErrNonceNotFound):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeNonceNotFound, "Login nonce not found or expired"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed"),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})

	case errors.Is(err, apperrors.ErrCertificateNotFound),
		errors.Is(err, apperrors.ErrInstituteNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message),
		})

	case errors.Is(err, apperrors.ErrDuplicateCertificate):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDuplicateCertificate, "This student already has a certificate from this institute."),
		})

	case errors.Is(err, apperrors.ErrInstituteAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message),
		})

	case errors.Is(err, apperrors.ErrCertificateRevoked):
		c.JSON(410, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Certificate has been revoked"),
		})

	case errors.Is(err, apperrors.ErrChainWrite):
		c.JSON(502, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeChainWriteFailed, message),
		})

	case errors.Is(err, apperrors.ErrCachePersistence):
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeCacheWriteFailed, "Failed to persist certificate record"),
		})

	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
