package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/content"
	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/SAP-F-2025/sat-practice-service/internal/validator"
)

// maxExportRows bounds a single export
const maxExportRows = 5000

const (
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	markdownContentType = "text/markdown; charset=utf-8"
)

type exportService struct {
	repo      repositories.Repository
	logger    *ServiceLogger
	validator *validator.Validator
	now       func() time.Time
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ExportService {
	return &exportService{
		repo:      repo,
		logger:    NewServiceLogger(logger, LogConfig{Service: "sat-practice-service", Component: "export"}),
		validator: validator,
		now:       time.Now,
	}
}

// Export writes every question matching req's filters. Pagination fields of
// req are ignored.
func (s *exportService) Export(ctx context.Context, req *models.ListQuestionsRequest, format models.ExportFormat) (result *ExportResult, err error) {
	op := s.logger.WithOperation(ctx, "export_questions")
	defer func() { op.LogResult(string(format), "question", err) }()

	if format != models.ExportXLSX && format != models.ExportMarkdown {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	questions, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	result = &ExportResult{
		Filename: fmt.Sprintf("questions-%s.%s", s.now().UTC().Format("20060102-150405"), format),
		Count:    len(questions),
	}
	switch format {
	case models.ExportXLSX:
		result.ContentType = xlsxContentType
		result.Data, err = writeQuestionsWorkbook(questions)
	case models.ExportMarkdown:
		result.ContentType = markdownContentType
		result.Data, err = writeQuestionsMarkdown(questions)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *exportService) collect(ctx context.Context, req *models.ListQuestionsRequest) ([]*models.Question, error) {
	page := *req
	page.Page, page.Limit = 1, models.MaxLimit

	var all []*models.Question
	for len(all) < maxExportRows {
		questions, total, err := s.repo.Question().List(ctx, toFilters(&page))
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for export: %w", err)
		}
		all = append(all, questions...)
		if len(questions) < page.Limit || int64(len(all)) >= total {
			break
		}
		page.Page++
	}
	if len(all) > maxExportRows {
		all = all[:maxExportRows]
	}
	return all, nil
}

func writeQuestionsMarkdown(questions []*models.Question) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# SAT Practice Questions\n")

	for _, q := range questions {
		fmt.Fprintf(&b, "\n## %s\n\n", q.QuestionID)
		fmt.Fprintf(&b, "*%s / %s / %s / %s / %s*\n", q.Section, q.Domain, q.Skill, q.Difficulty.Label(), q.Type.Label())

		for _, raw := range []*string{q.Paragraph, &q.QuestionText} {
			md, err := content.Markdown(content.NormalizePtr(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to convert question %s: %w", q.QuestionID, err)
			}
			if md != "" {
				b.WriteString("\n" + md + "\n")
			}
		}

		if len(q.Choices) > 0 {
			b.WriteString("\n")
			for i, choice := range q.Choices {
				md, err := content.Markdown(content.Normalize(choice))
				if err != nil {
					return nil, fmt.Errorf("failed to convert choice of %s: %w", q.QuestionID, err)
				}
				fmt.Fprintf(&b, "%c. %s\n", 'A'+i, strings.ReplaceAll(md, "\n", " "))
			}
		}

		fmt.Fprintf(&b, "\n**Answer:** %s\n", strings.Join(q.CorrectAnswer, ", "))

		explanation, err := content.Markdown(content.NormalizePtr(q.Explanation))
		if err != nil {
			return nil, fmt.Errorf("failed to convert explanation of %s: %w", q.QuestionID, err)
		}
		if explanation != "" {
			b.WriteString("\n**Explanation:**\n\n" + explanation + "\n")
		}
	}

	return []byte(b.String()), nil
}
