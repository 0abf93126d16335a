package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/events"
	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/SAP-F-2025/sat-practice-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

type ImportFormat string

const (
	ImportJSON ImportFormat = "json"
	ImportXLSX ImportFormat = "xlsx"
)

// DetectImportFormat picks the import format from a file name
func DetectImportFormat(filename string) (ImportFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ImportJSON, nil
	case ".xlsx":
		return ImportXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

type importService struct {
	repo      repositories.Repository
	questions QuestionService
	catalog   CatalogService
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator

	// one bulk load at a time
	running sync.Mutex
}

func NewImportService(repo repositories.Repository, questions QuestionService, catalog CatalogService,
	publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ImportService {
	return &importService{
		repo:      repo,
		questions: questions,
		catalog:   catalog,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "sat-practice-service", Component: "import"}),
		validator: validator,
	}
}

func (s *importService) BulkLoadFile(ctx context.Context, path string) (*models.BulkLoadSummary, error) {
	format, err := DetectImportFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.BulkLoad(ctx, f, format, path)
}

// BulkLoad stores every valid record of r whose question ID is not stored yet.
// Existing IDs are skipped rather than updated.
func (s *importService) BulkLoad(ctx context.Context, r io.Reader, format ImportFormat, origin string) (summary *models.BulkLoadSummary, err error) {
	op := s.logger.WithOperation(ctx, "bulk_load")
	defer func() { op.LogResult(origin, "question", err) }()

	if !s.running.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.running.Unlock()

	start := time.Now()

	records, failures, err := s.readRecords(r, format)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && len(failures) == 0 {
		return nil, ErrEmptyImport
	}

	summary = &models.BulkLoadSummary{Failures: failures, Errors: len(failures)}

	valid := make([]*models.SourceQuestion, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if errs := s.validator.Question().ValidateSource(rec); len(errs) > 0 {
			summary.Errors++
			sourceID := ""
			if rec != nil {
				sourceID = rec.ID
			}
			for _, e := range errs {
				summary.Failures = append(summary.Failures, models.ImportValidationError{
					Row: i + 1, Column: e.Field, Message: e.Message, Value: fmt.Sprint(e.Value), SourceID: sourceID,
				})
			}
			continue
		}
		if seen[rec.ID] {
			summary.Skipped++
			continue
		}
		seen[rec.ID] = true
		valid = append(valid, rec)
	}

	ids := make([]string, len(valid))
	for i, rec := range valid {
		ids[i] = rec.ID
	}
	existing, err := s.repo.Question().ExistingQuestionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing questions: %w", err)
	}

	toCreate := make([]*models.Question, 0, len(valid))
	created := make([]*models.SourceQuestion, 0, len(valid))
	for _, rec := range valid {
		if existing[rec.ID] {
			summary.Skipped++
			continue
		}
		toCreate = append(toCreate, rec.ToQuestion())
		created = append(created, rec)
	}

	summary.Processed, err = s.store(ctx, toCreate, summary)
	if err != nil {
		return nil, err
	}

	if summary.Processed > 0 {
		if err := s.catalog.SyncFromQuestions(ctx, created); err != nil {
			s.logger.Warn(ctx, "Catalog sync failed", "error", err)
		}
		if err := s.questions.InvalidateCache(ctx); err != nil {
			s.logger.Warn(ctx, "Cache invalidation failed", "error", err)
		}
	}

	summary.ProcessingTime = time.Since(start)
	summary.Message = "Bulk load completed"
	s.publishLoaded(ctx, origin, summary)

	s.logger.Info(ctx, "Bulk load completed",
		"origin", origin,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"errors", summary.Errors)

	return summary, nil
}

// store inserts questions in one batch. If the batch is rejected each question
// is retried on its own so one bad row does not sink the rest.
func (s *importService) store(ctx context.Context, questions []*models.Question, summary *models.BulkLoadSummary) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	batchErr := s.repo.Question().CreateBatch(ctx, questions)
	if batchErr == nil {
		return len(questions), nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	s.logger.Warn(ctx, "Batch insert failed, retrying one by one", "error", batchErr)

	stored := 0
	for _, q := range questions {
		q.ID = ""
		if err := s.repo.Question().Create(ctx, q); err != nil {
			summary.Errors++
			summary.Failures = append(summary.Failures, models.ImportValidationError{
				Message: err.Error(), SourceID: q.QuestionID,
			})
			continue
		}
		stored++
	}
	return stored, nil
}

func (s *importService) readRecords(r io.Reader, format ImportFormat) ([]*models.SourceQuestion, []models.ImportValidationError, error) {
	switch format {
	case ImportJSON:
		var records []*models.SourceQuestion
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
		}
		return records, nil, nil
	case ImportXLSX:
		return readWorkbook(r)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readWorkbook(r io.Reader) ([]*models.SourceQuestion, []models.ImportValidationError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	defer f.Close()

	sheet := questionsSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedImport)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	records, failures := parseWorkbookRows(rows)
	return records, failures, nil
}

func (s *importService) publishLoaded(ctx context.Context, origin string, summary *models.BulkLoadSummary) {
	if s.publisher == nil {
		return
	}
	event := events.NewQuestionEvent(events.EventQuestionsBulkLoaded, events.BulkLoadedEvent{
		Origin:    filepath.Base(origin),
		Processed: summary.Processed,
		Skipped:   summary.Skipped,
		Errors:    summary.Errors,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish bulk load event", "error", err)
	}
}
