// internal/handlers/audit.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/omsmarine/vims-backend/internal/services"
	"github.com/omsmarine/vims-backend/internal/utils"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GET /audit
func (h *AuditHandler) GetAuditTrail(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.auditService.List(params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.PaginatedResponse(c, result)
}
