package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"brfiscal/internal/domain"
	"brfiscal/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondWithMeta sends a 200 success response with metadata such as a
// batch summary.
func RespondWithMeta(c *gin.Context, data, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrLengthMismatch):
		return http.StatusUnprocessableEntity, domain.CodeLengthMismatch, err.Error()
	case errors.Is(err, domain.ErrChecksumMismatch):
		return http.StatusUnprocessableEntity, domain.CodeChecksumMismatch, err.Error()
	case errors.Is(err, domain.ErrUnknownState):
		return http.StatusBadRequest, domain.CodeUnknownState, err.Error()
	case errors.Is(err, domain.ErrUnknownDocumentModel):
		return http.StatusUnprocessableEntity, domain.CodeUnknownDocumentModel, err.Error()
	case errors.Is(err, domain.ErrInvalidIssuerID):
		return http.StatusUnprocessableEntity, domain.CodeInvalidIssuerID, err.Error()
	case errors.Is(err, domain.ErrMalformedKey):
		return http.StatusBadRequest, domain.CodeMalformedKey, err.Error()
	case errors.Is(err, domain.ErrInvalidEmissionDate):
		return http.StatusUnprocessableEntity, domain.CodeInvalidEmissionDate, err.Error()
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest, domain.CodeInvalidFormat, err.Error()
	case errors.Is(err, domain.ErrUnsupportedKind):
		return http.StatusBadRequest, domain.CodeUnsupportedKind, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, domain.CodeInvalidInput, err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge, "BATCH_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrArchiveDisabled):
		return http.StatusConflict, "ARCHIVE_DISABLED", "report archive is not configured"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "report upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("internal error")
	}
	RespondError(c, status, code, msg)
}

// respondBindError reports a request body that failed binding.
func respondBindError(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
