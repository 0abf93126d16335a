package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

// QuestionService reads questions for the practice UI
type QuestionService interface {
	List(ctx context.Context, req *models.ListQuestionsRequest) (*QuestionListResponse, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error)
	GetRendered(ctx context.Context, id string) (*RenderedQuestion, error)
	GetFilters(ctx context.Context) (*FilterOptions, error)
	InvalidateCache(ctx context.Context) error
}

// ImportService loads question files into the store
type ImportService interface {
	BulkLoad(ctx context.Context, r io.Reader, format ImportFormat, origin string) (*models.BulkLoadSummary, error)
	BulkLoadFile(ctx context.Context, path string) (*models.BulkLoadSummary, error)
}

// ExportService writes filtered questions to a downloadable file
type ExportService interface {
	Export(ctx context.Context, req *models.ListQuestionsRequest, format models.ExportFormat) (*ExportResult, error)
}

// CatalogService serves the skill and module lists
type CatalogService interface {
	Skills(ctx context.Context) ([]*models.Skill, error)
	Modules(ctx context.Context) ([]*models.Module, error)
	SyncFromQuestions(ctx context.Context, questions []*models.SourceQuestion) error
}
