package postgres

import (
	"errors"

	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// SharedHelpers holds query helpers used by every repository
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyQuestionFilters narrows a question query. Empty filters are ignored.
func (h *SharedHelpers) ApplyQuestionFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.Section != "" {
		query = query.Where("section = ?", filters.Section)
	}
	if filters.Domain != "" {
		query = query.Where("domain = ?", filters.Domain)
	}
	if filters.Skill != "" {
		query = query.Where("skill ILIKE ?", "%"+escapeLike(filters.Skill)+"%")
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.QuestionID != "" {
		query = query.Where("question_id = ?", filters.QuestionID)
	}
	return query
}

// ApplyPagination orders newest first and clamps the page window
func (h *SharedHelpers) ApplyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return query.Order("created_at DESC").Order("question_id ASC").Limit(limit).Offset(offset)
}

// translateError maps gorm sentinels onto repository errors
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
