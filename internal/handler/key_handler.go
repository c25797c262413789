package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/edoc"
	"brfiscal/internal/service"
)

// KeyHandler handles access key parse, build and partition endpoints.
type KeyHandler struct {
	keyService service.KeyService
}

// NewKeyHandler creates a new KeyHandler.
func NewKeyHandler(keyService service.KeyService) *KeyHandler {
	return &KeyHandler{keyService: keyService}
}

type parseKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

type buildKeyRequest struct {
	UF           int    `json:"uf" binding:"required"`
	YearMonth    string `json:"year_month" binding:"required,len=4,numeric"`
	Issuer       string `json:"issuer" binding:"required"`
	Model        string `json:"model" binding:"required,len=2,numeric"`
	Series       int    `json:"series" binding:"gte=0"`
	Number       int    `json:"number" binding:"required,gt=0"`
	IssuanceForm int    `json:"issuance_form" binding:"gte=0,lte=9"`
	Code         string `json:"code"`
}

func (r buildKeyRequest) fields() edoc.Fields {
	return edoc.Fields{
		UF:           r.UF,
		YearMonth:    r.YearMonth,
		Issuer:       r.Issuer,
		Model:        r.Model,
		Series:       r.Series,
		Number:       r.Number,
		IssuanceForm: r.IssuanceForm,
		Code:         r.Code,
	}
}

// Parse handles POST /api/v1/keys/parse
func (h *KeyHandler) Parse(c *gin.Context) {
	var req parseKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.keyService.Parse(c.Request.Context(), req.Key)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, info)
}

// Build handles POST /api/v1/keys/build
func (h *KeyHandler) Build(c *gin.Context) {
	var req buildKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.keyService.Build(c.Request.Context(), req.fields())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: info})
}

// Parts handles GET /api/v1/keys/:key/parts?n=
func (h *KeyHandler) Parts(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "11"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "n must be an integer")
		return
	}

	parts, err := h.keyService.Partition(c.Request.Context(), c.Param("key"), n)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"key": c.Param("key"), "parts": parts})
}
