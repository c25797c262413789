package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/domain"
	"brfiscal/internal/service"
)

// maxJSONBatch caps the rows accepted by the JSON batch endpoint.
const maxJSONBatch = 1000

// IdentifierHandler handles single and JSON-batch identifier checks.
type IdentifierHandler struct {
	identifierService service.IdentifierService
}

// NewIdentifierHandler creates a new IdentifierHandler.
func NewIdentifierHandler(identifierService service.IdentifierService) *IdentifierHandler {
	return &IdentifierHandler{identifierService: identifierService}
}

type identifierRequest struct {
	Kind   domain.IdentifierKind `json:"kind" binding:"required"`
	Value  string                `json:"value" binding:"required"`
	UF     string                `json:"uf" binding:"omitempty,uf"`
	Strict bool                  `json:"strict"`
}

func (r identifierRequest) input() domain.IdentifierInput {
	return domain.IdentifierInput{Kind: r.Kind, Value: r.Value, UF: r.UF, Strict: r.Strict}
}

type batchRequest struct {
	Items []identifierRequest `json:"items" binding:"required,min=1,dive"`
}

// Validate handles POST /api/v1/identifiers/validate
func (h *IdentifierHandler) Validate(c *gin.Context) {
	var req identifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.identifierService.Validate(c.Request.Context(), req.input())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Format handles POST /api/v1/identifiers/format
func (h *IdentifierHandler) Format(c *gin.Context) {
	var req identifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	formatted, err := h.identifierService.Format(c.Request.Context(), req.input())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"kind": req.Kind, "value": req.Value, "formatted": formatted})
}

// Batch handles POST /api/v1/identifiers/batch
func (h *IdentifierHandler) Batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if len(req.Items) > maxJSONBatch {
		RespondError(c, http.StatusRequestEntityTooLarge, "BATCH_TOO_LARGE",
			fmt.Sprintf("at most %d items per request", maxJSONBatch))
		return
	}

	inputs := make([]domain.IdentifierInput, len(req.Items))
	for i := range req.Items {
		inputs[i] = req.Items[i].input()
	}
	result, err := h.identifierService.ValidateBatch(c.Request.Context(), inputs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondWithMeta(c, result.Results, result.Summary)
}
