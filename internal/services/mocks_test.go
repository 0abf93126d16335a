package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/SAP-F-2025/sat-practice-service/internal/cache"
	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*models.Question)
	return q, args.Error(1)
}

func (m *MockQuestionRepository) GetByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	args := m.Called(ctx, questionID)
	q, _ := args.Get(0).(*models.Question)
	return q, args.Error(1)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) ExistingQuestionIDs(ctx context.Context, questionIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, questionIDs)
	existing, _ := args.Get(0).(map[string]bool)
	return existing, args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, filters)
	questions, _ := args.Get(0).([]*models.Question)
	return questions, args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	args := m.Called(ctx, column)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *MockQuestionRepository) ExistsByQuestionID(ctx context.Context, questionID string) (bool, error) {
	args := m.Called(ctx, questionID)
	return args.Bool(0), args.Error(1)
}

// MockSkillRepository is a mock implementation of SkillRepository
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	args := m.Called(ctx)
	skills, _ := args.Get(0).([]*models.Skill)
	return skills, args.Error(1)
}

func (m *MockSkillRepository) Upsert(ctx context.Context, skills []*models.Skill) error {
	args := m.Called(ctx, skills)
	return args.Error(0)
}

// MockModuleRepository is a mock implementation of ModuleRepository
type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) List(ctx context.Context) ([]*models.Module, error) {
	args := m.Called(ctx)
	modules, _ := args.Get(0).([]*models.Module)
	return modules, args.Error(1)
}

func (m *MockModuleRepository) Upsert(ctx context.Context, modules []*models.Module) error {
	args := m.Called(ctx, modules)
	return args.Error(0)
}

type mockRepository struct {
	questions *MockQuestionRepository
	skills    *MockSkillRepository
	modules   *MockModuleRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		questions: &MockQuestionRepository{},
		skills:    &MockSkillRepository{},
		modules:   &MockModuleRepository{},
	}
}

func (r *mockRepository) Question() repositories.QuestionRepository { return r.questions }
func (r *mockRepository) Skill() repositories.SkillRepository       { return r.skills }
func (r *mockRepository) Module() repositories.ModuleRepository     { return r.modules }
func (r *mockRepository) Migrate(context.Context) error             { return nil }
func (r *mockRepository) Ping(context.Context) error                { return nil }
func (r *mockRepository) Close() error                              { return nil }

// memoryCache is an in-process CacheService for tests
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
