package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/app/services"
	"github.com/nahid/certchain/internal/middleware"
)

// AuthController handles wallet-based authentication.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Nonce issues a login challenge
// @Summary Request a login nonce
// @Description Returns a single-use challenge message the wallet must sign to log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.NonceRequest true "Wallet address"
// @Success 200 {object} dto.APIResponse{data=dto.NonceResponse} "Challenge issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid wallet address"
// @Router /auth/nonce [post]
func (c *AuthController) Nonce(ctx *gin.Context) {
	var req dto.NonceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	nonce, err := c.authService.Nonce(ctx, req.Address)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      nonce,
		Timestamp: time.Now(),
	})
}

// Login exchanges a signed challenge for a bearer token
// @Summary Wallet login
// @Description Verifies the signed nonce challenge and returns a JWT bound to the wallet address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Address and signature"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Signature verification failed or nonce expired"
// @Failure 403 {object} dto.ErrorResponse "Address is not a registered institute"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorDetail(err)))
		return
	}

	result, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
