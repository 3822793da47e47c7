package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billscan/internal/export"
	"billscan/internal/service"
)

// ExtractHandler handles bill extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// ExtractRequest is the request body for the extraction endpoints.
type ExtractRequest struct {
	Document string `json:"document" binding:"required"`
}

// Extract handles POST /api/v1/extract-bill-data
// @Summary Extract bill line items
// @Description Download a bill document (PDF or image) from a URL, extract line items page by page, and return the aggregated result
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Document URL"
// @Success 200 {object} domain.ExtractionResponse "Aggregated pagewise line items"
// @Failure 400 {object} APIResponse "Download failed, unreadable document, or no pages"
// @Failure 413 {object} APIResponse "Document too large"
// @Router /extract-bill-data [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document is required")
		return
	}

	resp, err := h.extractionService.ExtractBillData(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Export handles POST /api/v1/extract-bill-data/export
// @Summary Export bill line items as CSV or XLSX
// @Description Run the extraction pipeline and return the line items as a downloadable file
// @Tags extraction
// @Accept json
// @Produce application/octet-stream
// @Param request body ExtractRequest true "Document URL"
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {file} file "Exported line items"
// @Failure 400 {object} APIResponse "Invalid format or unprocessable document"
// @Router /extract-bill-data/export [post]
func (h *ExtractHandler) Export(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document is required")
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be 'csv' or 'xlsx'")
		return
	}

	resp, err := h.extractionService.ExtractBillData(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := "bill-items-" + time.Now().UTC().Format("20060102-150405")
	var buf bytes.Buffer

	switch format {
	case "csv":
		if err := export.WriteCSV(&buf, &resp.Data); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := export.WriteXLSX(&buf, &resp.Data); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
