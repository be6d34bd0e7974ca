// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/omsmarine/vims-backend/internal/config"
	"github.com/omsmarine/vims-backend/internal/handlers"
	"github.com/omsmarine/vims-backend/internal/middleware"
	"github.com/omsmarine/vims-backend/internal/services"
	"github.com/omsmarine/vims-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditService(db)
	inquiryService := services.NewInquiryService(db)
	quotationService := services.NewQuotationService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	// Initialize handlers
	inquiryHandler := handlers.NewInquiryHandler(inquiryService, auditService)
	quotationHandler := handlers.NewQuotationHandler(quotationService, storageService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.AuthRequired())
	{
		// Inquiry routes
		inquiries := v1.Group("/inquiries")
		{
			inquiries.POST("", inquiryHandler.CreateInquiry)
			inquiries.GET("", inquiryHandler.GetInquiries)
			inquiries.GET("/stats", inquiryHandler.GetInquiryStats)
			inquiries.GET("/:id", inquiryHandler.GetInquiry)
			inquiries.PATCH("/:id", inquiryHandler.UpdateInquiry)
			inquiries.POST("/:id/status", inquiryHandler.TransitionInquiry)
			inquiries.PUT("/:id/pics", inquiryHandler.ReassignInquiry)
			inquiries.GET("/:id/audit", inquiryHandler.GetInquiryAudit)
		}

		// Quotation routes
		quotations := v1.Group("/quotations")
		{
			quotations.POST("/upload", middleware.UploadRateLimit(), quotationHandler.UploadSpreadsheet)
			quotations.POST("/generate", quotationHandler.GenerateQuotation)
			quotations.POST("/manual", quotationHandler.CreateManualQuotation)
			quotations.GET("", quotationHandler.GetQuotations)
			quotations.GET("/:id", quotationHandler.GetQuotation)
			quotations.POST("/:id/items", quotationHandler.AddLineItem)
			quotations.PUT("/:id/items/:index", quotationHandler.UpdateLineItem)
			quotations.DELETE("/:id/items/:index", quotationHandler.RemoveLineItem)
		}

		// Audit trail
		v1.GET("/audit", auditHandler.GetAuditTrail)
	}

	return r
}
