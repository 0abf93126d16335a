package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/cache"
	"github.com/SAP-F-2025/sat-practice-service/internal/events"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/SAP-F-2025/sat-practice-service/internal/validator"
)

// ServiceManager builds and holds every service of the application
type ServiceManager struct {
	Question QuestionService
	Import   ImportService
	Export   ExportService
	Catalog  CatalogService
}

type ServiceDeps struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Publisher events.EventPublisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

func NewServiceManager(deps ServiceDeps) *ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	questions := NewQuestionService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Logger, deps.Validator)
	catalog := NewCatalogService(deps.Repo, deps.Logger)

	return &ServiceManager{
		Question: questions,
		Import:   NewImportService(deps.Repo, questions, catalog, deps.Publisher, deps.Logger, deps.Validator),
		Export:   NewExportService(deps.Repo, deps.Logger, deps.Validator),
		Catalog:  catalog,
	}
}
