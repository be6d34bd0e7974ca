// internal/handlers/inquiry.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/omsmarine/vims-backend/internal/services"
	"github.com/omsmarine/vims-backend/internal/utils"
)

type InquiryHandler struct {
	inquiryService *services.InquiryService
	auditService   *services.AuditService
}

func NewInquiryHandler(inquiryService *services.InquiryService, auditService *services.AuditService) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		auditService:   auditService,
	}
}

// POST /inquiries
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inquiry, err := h.inquiryService.Create(&req, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, inquiry)
}

// GET /inquiries
func (h *InquiryHandler) GetInquiries(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.inquiryService.List(params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.PaginatedResponse(c, result)
}

// GET /inquiries/stats
func (h *InquiryHandler) GetInquiryStats(c *gin.Context) {
	stats, err := h.inquiryService.Stats()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /inquiries/:id
func (h *InquiryHandler) GetInquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
		return
	}

	inquiry, err := h.inquiryService.Get(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// PATCH /inquiries/:id
func (h *InquiryHandler) UpdateInquiry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
		return
	}

	var req services.UpdateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	inquiry, err := h.inquiryService.Edit(id, &req, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// POST /inquiries/:id/status
func (h *InquiryHandler) TransitionInquiry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
		return
	}

	var req services.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inquiry, err := h.inquiryService.Transition(id, &req, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// PUT /inquiries/:id/pics
func (h *InquiryHandler) ReassignInquiry(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
		return
	}

	var req services.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inquiry, err := h.inquiryService.Reassign(id, &req, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, inquiry)
}

// GET /inquiries/:id/audit
func (h *InquiryHandler) GetInquiryAudit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
		return
	}

	entries, err := h.auditService.EntriesFor(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, entries)
}
