package handler

import (
	"github.com/gin-gonic/gin"

	"brfiscal/internal/service"
	"brfiscal/internal/validator/document"
)

// DocumentHandler runs the document rule engine.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

type validateDocumentRequest struct {
	Document *document.Document `json:"document" binding:"required"`
	Rules    []string           `json:"rules"`
}

// Validate handles POST /api/v1/documents/validate
func (h *DocumentHandler) Validate(c *gin.Context) {
	var req validateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.documentService.Validate(c.Request.Context(), req.Document, req.Rules)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Rules handles GET /api/v1/documents/rules
func (h *DocumentHandler) Rules(c *gin.Context) {
	RespondOK(c, h.documentService.Rules(c.Request.Context()))
}
