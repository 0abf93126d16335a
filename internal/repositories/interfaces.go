package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Section    string               `json:"section"`
	Domain     string               `json:"domain"`
	Skill      string               `json:"skill"` // substring, case-insensitive
	Difficulty *models.Difficulty   `json:"difficulty"`
	Type       *models.QuestionType `json:"type"`
	QuestionID string               `json:"questionId"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// Repository groups the repositories backed by one database handle
type Repository interface {
	Question() QuestionRepository
	Skill() SkillRepository
	Module() ModuleRepository

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// SkillRepository reads the skill taxonomy
type SkillRepository interface {
	List(ctx context.Context) ([]*models.Skill, error)
	Upsert(ctx context.Context, skills []*models.Skill) error
}

// ModuleRepository reads the section modules
type ModuleRepository interface {
	List(ctx context.Context) ([]*models.Module, error)
	Upsert(ctx context.Context, modules []*models.Module) error
}
