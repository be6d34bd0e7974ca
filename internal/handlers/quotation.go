// internal/handlers/quotation.go
package handlers

import (
	"bytes"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/omsmarine/vims-backend/internal/engine"
	"github.com/omsmarine/vims-backend/internal/services"
	"github.com/omsmarine/vims-backend/internal/tabular"
	"github.com/omsmarine/vims-backend/internal/utils"
)

type QuotationHandler struct {
	quotationService *services.QuotationService
	storageService   *services.StorageService
}

func NewQuotationHandler(quotationService *services.QuotationService, storageService *services.StorageService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		storageService:   storageService,
	}
}

// POST /quotations/upload
//
// Accepts a multipart spreadsheet and returns its headers and rows so the
// client can build a column mapping. The original file is archived as-is;
// parsing failures never leave a partial quotation behind.
func (h *QuotationHandler) UploadSpreadsheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Spreadsheet file is required", err.Error())
		return
	}

	if err := h.storageService.ValidateSpreadsheet(fileHeader.Filename, fileHeader.Size); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read uploaded file", err.Error())
		return
	}

	table, err := tabular.ReadWorkbook(bytes.NewReader(content))
	if err != nil {
		utils.BadRequestResponse(c, "Unable to parse spreadsheet", err.Error())
		return
	}

	archive, err := h.storageService.ArchiveSpreadsheet(fileHeader.Filename, content)
	if err != nil {
		logrus.WithError(err).Error("Failed to archive spreadsheet")
		utils.InternalErrorResponse(c, "Failed to archive spreadsheet")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"filename": fileHeader.Filename,
		"headers":  table.Headers,
		"rows":     table.Rows,
		"archive":  archive,
	})
}

// POST /quotations/generate
func (h *QuotationHandler) GenerateQuotation(c *gin.Context) {
	var req services.GenerateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	quotation, err := h.quotationService.GenerateFromTable(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, quotation)
}

// POST /quotations/manual
func (h *QuotationHandler) CreateManualQuotation(c *gin.Context) {
	var req services.ManualQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	quotation, err := h.quotationService.GenerateManual(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, quotation)
}

// GET /quotations
func (h *QuotationHandler) GetQuotations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var inquiryID *uuid.UUID
	if raw := c.Query("inquiry_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid inquiry ID", nil)
			return
		}
		inquiryID = &id
	}

	result, err := h.quotationService.List(params, inquiryID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.PaginatedResponse(c, result)
}

// GET /quotations/:id
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid quotation ID", nil)
		return
	}

	quotation, err := h.quotationService.Get(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, quotation)
}

// POST /quotations/:id/items
func (h *QuotationHandler) AddLineItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid quotation ID", nil)
		return
	}

	var item engine.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	quotation, err := h.quotationService.AddLineItem(id, item)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, quotation)
}

// PUT /quotations/:id/items/:index
func (h *QuotationHandler) UpdateLineItem(c *gin.Context) {
	id, index, ok := quotationItemParams(c)
	if !ok {
		return
	}

	var item engine.LineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	quotation, err := h.quotationService.UpdateLineItem(id, index, item)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, quotation)
}

// DELETE /quotations/:id/items/:index
func (h *QuotationHandler) RemoveLineItem(c *gin.Context) {
	id, index, ok := quotationItemParams(c)
	if !ok {
		return
	}

	quotation, err := h.quotationService.RemoveLineItem(id, index)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, quotation)
}

func quotationItemParams(c *gin.Context) (uuid.UUID, int, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid quotation ID", nil)
		return uuid.Nil, 0, false
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid line item index", nil)
		return uuid.Nil, 0, false
	}

	return id, index, true
}
