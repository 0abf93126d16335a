package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

var distinctColumns = map[string]bool{
	repositories.ColumnSection: true,
	repositories.ColumnDomain:  true,
	repositories.ColumnSkill:   true,
	repositories.ColumnType:    true,
}

type QuestionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create stores one question
func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	if err := q.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question %s: %w", question.QuestionID, err)
	}
	return nil
}

// GetByID retrieves a question by its storage ID
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// GetByQuestionID retrieves a question by its source identifier
func (q *QuestionPostgreSQL) GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).Where("question_id = ?", questionID).First(&question).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// CreateBatch inserts questions in chunks. Rows whose question_id already
// exists are left untouched.
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_id"}},
			DoNothing: true,
		}).CreateInBatches(questions, batchSize).Error
		if err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
}

// ExistingQuestionIDs reports which of the given source identifiers are stored
func (q *QuestionPostgreSQL) ExistingQuestionIDs(ctx context.Context, questionIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(questionIDs))
	for start := 0; start < len(questionIDs); start += batchSize {
		end := min(start+batchSize, len(questionIDs))

		var found []string
		err := q.db.WithContext(ctx).
			Model(&models.Question{}).
			Where("question_id IN ?", questionIDs[start:end]).
			Pluck("question_id", &found).Error
		if err != nil {
			return nil, err
		}
		for _, id := range found {
			existing[id] = true
		}
	}
	return existing, nil
}

// List returns one page of questions matching filters plus the total count
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.Question{})
	query = q.helpers.ApplyQuestionFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = q.helpers.ApplyPagination(query, filters.Limit, filters.Offset)

	var questions []*models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) Count(ctx context.Context) (int64, error) {
	var total int64
	err := q.db.WithContext(ctx).Model(&models.Question{}).Count(&total).Error
	return total, err
}

// DistinctValues lists the sorted non-empty values of one filterable column
func (q *QuestionPostgreSQL) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("column %q is not filterable", column)
	}

	var values []string
	err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where(column+" <> ''").
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (q *QuestionPostgreSQL) ExistsByQuestionID(ctx context.Context, questionID string) (bool, error) {
	var count int64
	err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count > 0, err
}
