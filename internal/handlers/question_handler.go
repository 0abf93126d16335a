package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/services"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
	exportService   services.ExportService
}

func NewQuestionHandler(
	questionService services.QuestionService,
	exportService services.ExportService,
	logger utils.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		exportService:   exportService,
	}
}

// ListQuestions lists questions with optional filters
// @Summary List questions
// @Tags questions
// @Produce json
// @Param section query string false "Section"
// @Param domain query string false "Domain"
// @Param skill query string false "Skill (substring)"
// @Param difficulty query int false "Difficulty 1-3"
// @Param type query string false "multiple-choice or grid-in"
// @Param questionId query string false "Source question ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} services.QuestionListResponse
// @Failure 400 {object} ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	resp, err := h.questionService.List(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetFilters returns the values each list filter accepts
// @Summary Get filter options
// @Tags questions
// @Produce json
// @Success 200 {object} services.FilterOptions
// @Router /questions/filters [get]
func (h *QuestionHandler) GetFilters(c *gin.Context) {
	opts, err := h.questionService.GetFilters(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// GetQuestion retrieves a question by its ID
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} models.Question
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// GetQuestionByQuestionID retrieves a question by its source identifier
// @Router /questions/by-question-id/{questionId} [get]
func (h *QuestionHandler) GetQuestionByQuestionID(c *gin.Context) {
	questionID := ParseStringIDParam(c, "questionId")
	if questionID == "" {
		return
	}

	question, err := h.questionService.GetByQuestionID(c.Request.Context(), questionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// GetRenderedQuestion returns a question with its markup split into text and
// math segments
// @Summary Get rendered question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} services.RenderedQuestion
// @Failure 404 {object} ErrorResponse
// @Router /questions/{id}/rendered [get]
func (h *QuestionHandler) GetRenderedQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	rendered, err := h.questionService.GetRendered(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}

// ExportQuestions downloads the filtered questions as xlsx or Markdown
// @Summary Export questions
// @Tags questions
// @Param format query string false "xlsx or md" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /questions/export [get]
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	format := models.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(models.ExportXLSX))))
	h.LogRequest(c, "Exporting questions", "format", format)

	result, err := h.exportService.Export(c.Request.Context(), req, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *QuestionHandler) bindListRequest(c *gin.Context) (*models.ListQuestionsRequest, bool) {
	var req models.ListQuestionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeBadRequest, "Invalid query parameters", err, err.Error())
		return nil, false
	}
	return &req, true
}
