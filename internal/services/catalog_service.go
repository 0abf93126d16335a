package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
)

type catalogService struct {
	repo   repositories.Repository
	logger *ServiceLogger
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: NewServiceLogger(logger, LogConfig{Service: "sat-practice-service", Component: "catalog"}),
	}
}

func (s *catalogService) Skills(ctx context.Context) (skills []*models.Skill, err error) {
	op := s.logger.WithOperation(ctx, "list_skills")
	defer func() { op.LogResult("", "skill", err) }()

	skills, err = s.repo.Skill().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	if skills == nil {
		skills = []*models.Skill{}
	}
	return skills, nil
}

func (s *catalogService) Modules(ctx context.Context) (modules []*models.Module, err error) {
	op := s.logger.WithOperation(ctx, "list_modules")
	defer func() { op.LogResult("", "module", err) }()

	modules, err = s.repo.Module().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	if modules == nil {
		modules = []*models.Module{}
	}
	return modules, nil
}

// SyncFromQuestions records every skill and section seen in questions
func (s *catalogService) SyncFromQuestions(ctx context.Context, questions []*models.SourceQuestion) error {
	skills := make(map[string]*models.Skill)
	modules := make(map[string]*models.Module)

	for _, q := range questions {
		if q.Skill != "" {
			code := SkillCode(q.Skill)
			if _, ok := skills[code]; !ok {
				skills[code] = &models.Skill{Code: code, Description: q.Skill, Domain: q.Domain, Section: q.Section}
			}
		}
		if q.Section != "" {
			if _, ok := modules[q.Section]; !ok {
				modules[q.Section] = &models.Module{Name: q.Section, Section: q.Section}
			}
		}
	}

	if err := s.repo.Skill().Upsert(ctx, sortedValues(skills)); err != nil {
		return fmt.Errorf("failed to upsert skills: %w", err)
	}
	if err := s.repo.Module().Upsert(ctx, sortedValues(modules)); err != nil {
		return fmt.Errorf("failed to upsert modules: %w", err)
	}
	return nil
}

const maxSkillCode = 100

// SkillCode derives a stable slug from a skill description,
// e.g. "Linear equations in one variable" -> "linear-equations-in-one-variable".
func SkillCode(description string) string {
	var b strings.Builder
	dash := false
	n := 0
	for _, r := range strings.ToLower(description) {
		if n >= maxSkillCode {
			break
		}
		n++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func sortedValues[T any](m map[string]*T) []*T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
