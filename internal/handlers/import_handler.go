package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/sat-practice-service/internal/services"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds a bulk load upload
const maxUploadSize = 64 << 20

type ImportHandler struct {
	BaseHandler
	importService services.ImportService
	dataFile      string
}

func NewImportHandler(importService services.ImportService, dataFile string, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
		dataFile:      dataFile,
	}
}

// BulkLoad loads questions from an uploaded file, or from the configured
// data file when the request carries none
// @Summary Bulk load questions
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Cleaned question JSON or xlsx export"
// @Success 200 {object} models.BulkLoadSummary
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questions/bulk-load [post]
func (h *ImportHandler) BulkLoad(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		h.LogRequest(c, "Bulk loading configured data file", "path", h.dataFile)
		summary, err := h.importService.BulkLoadFile(c.Request.Context(), h.dataFile)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeBadRequest, "Invalid upload", err, err.Error())
		return
	}

	format, err := services.DetectImportFormat(header.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeBadRequest, "Could not read upload", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Bulk loading upload", "filename", header.Filename, "size", header.Size)
	summary, err := h.importService.BulkLoad(c.Request.Context(), file, format, header.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
