package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/domain"
	"brfiscal/internal/uf"
)

// UFHandler exposes the federative unit registry.
type UFHandler struct{}

// NewUFHandler creates a new UFHandler.
func NewUFHandler() *UFHandler {
	return &UFHandler{}
}

// List handles GET /api/v1/ufs
func (h *UFHandler) List(c *gin.Context) {
	RespondOK(c, uf.All())
}

// Get handles GET /api/v1/ufs/:ref where ref is a sigla or an IBGE code.
func (h *UFHandler) Get(c *gin.Context) {
	state, err := uf.Resolve(c.Param("ref"))
	if errors.Is(err, domain.ErrUnknownState) {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, state)
}
