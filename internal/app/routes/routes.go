package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/nahid/certchain/internal/app/controllers"
	"github.com/nahid/certchain/internal/app/models/dto"
	"github.com/nahid/certchain/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	cacheController *controllers.CacheController,
	certificateController *controllers.CertificateController,
	instituteController *controllers.InstituteController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Legacy cache routes ---
	// Kept at their original path and wire format for existing clients.
	legacy := router.Group("/api/certificates")
	{
		legacy.POST("", cacheController.StoreCertificate)
		legacy.GET("", cacheController.ListCertificates)
	}

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/nonce", authController.Nonce)
		auth.POST("/login", authController.Login)
	}

	// --- Public verification routes ---
	certificates := v1.Group("/certificates")
	{
		certificates.GET("/:certId", certificateController.GetCertificate)
		certificates.GET("/:certId/verify", certificateController.VerifyCertificate)
	}

	// Institute lookup (public access)
	v1.GET("/institutes/:address", instituteController.GetInstitute)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Issuance and revocation require an institute token
		certificatesProtected := authenticated.Group("/certificates")
		{
			certificatesProtected.POST("", certificateController.IssueCertificate)
			certificatesProtected.POST("/:certId/revoke", certificateController.RevokeCertificate)
			certificatesProtected.PUT("/:certId/content-hash", certificateController.UpdateContentHash)
		}

		// Institute self-service
		authenticated.POST("/institutes", instituteController.RegisterInstitute)

		me := authenticated.Group("/institutes/me")
		{
			me.POST("/degrees", instituteController.AddDegrees)
			me.PUT("/degrees/:index", instituteController.UpdateDegree)
			me.DELETE("/degrees/:index", instituteController.RemoveDegree)
			me.DELETE("/degrees", instituteController.ClearDegrees)

			me.POST("/departments", instituteController.AddDepartments)
			me.PUT("/departments/:index", instituteController.UpdateDepartment)
			me.DELETE("/departments/:index", instituteController.RemoveDepartment)
			me.DELETE("/departments", instituteController.ClearDepartments)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
