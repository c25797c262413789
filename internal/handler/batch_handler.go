package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/domain"
	"brfiscal/internal/service"
)

// BatchHandler accepts CSV/XLSX batch uploads and returns reports.
type BatchHandler struct {
	batchService  service.BatchService
	maxUploadSize int64
}

// NewBatchHandler creates a new BatchHandler. maxUploadSizeMB <= 0 disables
// the size check.
func NewBatchHandler(batchService service.BatchService, maxUploadSizeMB int64) *BatchHandler {
	return &BatchHandler{batchService: batchService, maxUploadSize: maxUploadSizeMB * 1024 * 1024}
}

// Upload handles POST /api/v1/batches
//
// Form fields: file (required), report_format (csv|xlsx), default_kind,
// default_uf, archive (bool) and download (bool). With download=true the
// report is returned as an attachment; otherwise the results are returned
// as JSON with the report metadata.
func (h *BatchHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	input := service.BatchInput{
		Filename:     header.Filename,
		Body:         file,
		ReportFormat: domain.ReportFormat(strings.ToLower(c.PostForm("report_format"))),
		DefaultKind:  domain.IdentifierKind(strings.ToLower(c.PostForm("default_kind"))),
		DefaultUF:    strings.ToUpper(c.PostForm("default_uf")),
	}
	if input.DefaultKind != "" && !input.DefaultKind.IsValid() {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown default_kind")
		return
	}
	archive, err := formBool(c, "archive")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "archive must be a boolean")
		return
	}
	download, err := formBool(c, "download")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "download must be a boolean")
		return
	}
	input.Archive = archive

	out, err := h.batchService.Process(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	if download {
		c.Header("Content-Disposition", `attachment; filename="`+out.Artifact.Filename+`"`)
		c.Data(http.StatusOK, out.Artifact.ContentType, out.Report)
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    gin.H{"results": out.Result.Results, "report": out.Artifact},
		Meta:    out.Result.Summary,
	})
}

func formBool(c *gin.Context, field string) (bool, error) {
	v := c.PostForm(field)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
