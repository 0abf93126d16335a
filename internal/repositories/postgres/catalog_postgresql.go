package postgres

import (
	"context"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillPostgreSQL struct {
	db *gorm.DB
}

func NewSkillPostgreSQL(db *gorm.DB) repositories.SkillRepository {
	return &SkillPostgreSQL{db: db}
}

func (s *SkillPostgreSQL) List(ctx context.Context) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := s.db.WithContext(ctx).Order("description ASC").Find(&skills).Error
	return skills, err
}

// Upsert inserts skills keyed by code, refreshing the descriptive columns
func (s *SkillPostgreSQL) Upsert(ctx context.Context, skills []*models.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "domain", "section"}),
	}).Create(skills).Error
}

type ModulePostgreSQL struct {
	db *gorm.DB
}

func NewModulePostgreSQL(db *gorm.DB) repositories.ModuleRepository {
	return &ModulePostgreSQL{db: db}
}

func (m *ModulePostgreSQL) List(ctx context.Context) ([]*models.Module, error) {
	var modules []*models.Module
	err := m.db.WithContext(ctx).Order("name ASC").Find(&modules).Error
	return modules, err
}

func (m *ModulePostgreSQL) Upsert(ctx context.Context, modules []*models.Module) error {
	if len(modules) == 0 {
		return nil
	}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"section"}),
	}).Create(modules).Error
}
