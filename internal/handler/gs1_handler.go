package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/gs1"
)

const maxGenerated = 100

// GS1Handler generates random GS1 codes with valid check digits.
type GS1Handler struct{}

// NewGS1Handler creates a new GS1Handler.
func NewGS1Handler() *GS1Handler {
	return &GS1Handler{}
}

// Generate handles GET /api/v1/gs1/generate?length=13&n=1
func (h *GS1Handler) Generate(c *gin.Context) {
	length, err := strconv.Atoi(c.DefaultQuery("length", "13"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "length must be an integer")
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", "1"))
	if err != nil || n > maxGenerated {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "n must be an integer between 1 and 100")
		return
	}

	codes, err := gs1.Generate(length, n, nil)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"length": length, "codes": codes})
}
