package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db       *gorm.DB
	question repositories.QuestionRepository
	skill    repositories.SkillRepository
	module   repositories.ModuleRepository
}

// NewRepository wires every postgres repository onto one gorm handle
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:       db,
		question: NewQuestionPostgreSQL(db),
		skill:    NewSkillPostgreSQL(db),
		module:   NewModulePostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Skill() repositories.SkillRepository       { return r.skill }
func (r *repository) Module() repositories.ModuleRepository     { return r.module }

func (r *repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
