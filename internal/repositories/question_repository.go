package repositories

import (
	"context"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

// Columns that DistinctValues accepts
const (
	ColumnSection = "section"
	ColumnDomain  = "domain"
	ColumnSkill   = "skill"
	ColumnType    = "type"
)

// QuestionRepository interface for question storage
type QuestionRepository interface {
	// Basic operations
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error)

	// Bulk operations
	CreateBatch(ctx context.Context, questions []*models.Question) error
	ExistingQuestionIDs(ctx context.Context, questionIDs []string) (map[string]bool, error)

	// Query operations
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	Count(ctx context.Context) (int64, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// Validation and checks
	ExistsByQuestionID(ctx context.Context, questionID string) (bool, error)
}
