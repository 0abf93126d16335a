package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/cache"
	"github.com/SAP-F-2025/sat-practice-service/internal/content"
	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/SAP-F-2025/sat-practice-service/internal/validator"
)

type questionService struct {
	repo       repositories.Repository
	cache      cache.CacheService
	cacheTTL   time.Duration
	typesetter content.Typesetter
	logger     *ServiceLogger
	validator  *validator.Validator
}

func NewQuestionService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration,
	logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:       repo,
		cache:      cacheService,
		cacheTTL:   cacheTTL,
		typesetter: content.DelimiterTypesetter{},
		logger:     NewServiceLogger(logger, LogConfig{Service: "sat-practice-service", Component: "questions"}),
		validator:  validator,
	}
}

func (s *questionService) List(ctx context.Context, req *models.ListQuestionsRequest) (resp *QuestionListResponse, err error) {
	op := s.logger.WithOperation(ctx, "list_questions")
	defer func() { op.LogResult("", "question", err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	req.Normalize()

	key := cache.ListKey(listCacheParams(req), req.Page, req.Limit)
	var cached QuestionListResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn(ctx, "Question list cache read failed", "error", err)
	}

	filters := toFilters(req)
	questions, total, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []*models.Question{}
	}

	resp = &QuestionListResponse{
		Items:      questions,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages(total, req.Limit),
	}

	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "Question list cache write failed", "error", err)
	}
	return resp, nil
}

func (s *questionService) GetByID(ctx context.Context, id string) (question *models.Question, err error) {
	op := s.logger.WithOperation(ctx, "get_question")
	defer func() { op.LogResult(id, "question", err) }()

	question, err = s.repo.Question().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return question, nil
}

func (s *questionService) GetByQuestionID(ctx context.Context, questionID string) (question *models.Question, err error) {
	op := s.logger.WithOperation(ctx, "get_question_by_question_id")
	defer func() { op.LogResult(questionID, "question", err) }()

	question, err = s.repo.Question().GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return question, nil
}

// GetRendered returns the question with its markup fields normalized
func (s *questionService) GetRendered(ctx context.Context, id string) (*RenderedQuestion, error) {
	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderQuestion(question, s.typesetter), nil
}

func (s *questionService) GetFilters(ctx context.Context) (opts *FilterOptions, err error) {
	op := s.logger.WithOperation(ctx, "get_filters")
	defer func() { op.LogResult("", "question", err) }()

	var cached FilterOptions
	if err := s.cache.Get(ctx, cache.FiltersKey(), &cached); err == nil {
		return &cached, nil
	}

	questions := s.repo.Question()
	opts = &FilterOptions{Difficulties: append([]models.Difficulty{}, models.Difficulties...)}
	for column, dest := range map[string]*[]string{
		repositories.ColumnSection: &opts.Sections,
		repositories.ColumnDomain:  &opts.Domains,
		repositories.ColumnSkill:   &opts.Skills,
		repositories.ColumnType:    &opts.Types,
	} {
		values, err := questions.DistinctValues(ctx, column)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s values: %w", column, err)
		}
		if values == nil {
			values = []string{}
		}
		*dest = values
	}

	if err := s.cache.Set(ctx, cache.FiltersKey(), opts, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "Filter cache write failed", "error", err)
	}
	return opts, nil
}

// InvalidateCache drops every cached listing and filter set
func (s *questionService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, cache.QuestionKeysPattern); err != nil {
		return fmt.Errorf("failed to invalidate question cache: %w", err)
	}
	return nil
}

// RenderQuestion normalizes every markup field of q. CorrectAnswer is passed
// through untouched.
func RenderQuestion(q *models.Question, ts content.Typesetter) *RenderedQuestion {
	r := &RenderedQuestion{
		ID:              q.ID,
		QuestionID:      q.QuestionID,
		Program:         q.Program,
		Section:         q.Section,
		Domain:          q.Domain,
		Skill:           q.Skill,
		Difficulty:      q.Difficulty,
		DifficultyLabel: q.Difficulty.Label(),
		Type:            q.Type,
		TypeLabel:       q.Type.Label(),
		Paragraph:       content.NormalizePtr(q.Paragraph),
		QuestionText:    content.Normalize(q.QuestionText),
		Choices:         make([]content.Content, 0, len(q.Choices)),
		CorrectAnswer:   append([]string{}, q.CorrectAnswer...),
		Explanation:     content.NormalizePtr(q.Explanation),
		VisualType:      q.VisualType,
		SVGContent:      q.SVGContent,
		ImageURL:        q.ImageURL,
	}

	r.HTML = RenderedHTML{
		Paragraph:    content.RenderHTML(r.Paragraph, ts),
		QuestionText: content.RenderHTML(r.QuestionText, ts),
		Choices:      make([]string, 0, len(q.Choices)),
		Explanation:  content.RenderHTML(r.Explanation, ts),
	}
	r.MathCount = r.Paragraph.MathCount() + r.QuestionText.MathCount() + r.Explanation.MathCount()

	for _, choice := range q.Choices {
		c := content.Normalize(choice)
		r.Choices = append(r.Choices, c)
		r.HTML.Choices = append(r.HTML.Choices, content.RenderHTML(c, ts))
		r.MathCount += c.MathCount()
	}

	return r
}

func toFilters(req *models.ListQuestionsRequest) repositories.QuestionFilters {
	filters := repositories.QuestionFilters{
		Section:    req.Section,
		Domain:     req.Domain,
		Skill:      req.Skill,
		QuestionID: req.QuestionID,
		Limit:      req.Limit,
		Offset:     req.Offset(),
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		filters.Difficulty = &d
	}
	if req.Type != "" {
		t := models.QuestionType(req.Type)
		filters.Type = &t
	}
	return filters
}

func listCacheParams(req *models.ListQuestionsRequest) url.Values {
	params := url.Values{}
	set := func(k, v string) {
		if v != "" {
			params.Set(k, v)
		}
	}
	set("section", req.Section)
	set("domain", req.Domain)
	set("skill", req.Skill)
	set("type", req.Type)
	set("questionId", req.QuestionID)
	if req.Difficulty != nil {
		params.Set("difficulty", strconv.Itoa(*req.Difficulty))
	}
	return params
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrQuestionNotFound
	}
	return err
}
