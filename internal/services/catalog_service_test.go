package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Lists(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewCatalogService(repo, discardLogger())

	repo.skills.On("List", ctx).Return([]*models.Skill{{Code: "boundaries", Description: "Boundaries"}}, nil)
	repo.modules.On("List", ctx).Return(nil, nil)

	skills, err := svc.Skills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 1)

	modules, err := svc.Modules(ctx)
	require.NoError(t, err)
	assert.NotNil(t, modules)
	assert.Empty(t, modules)
}

func TestCatalogService_ListError(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewCatalogService(repo, discardLogger())

	repo.skills.On("List", ctx).Return(nil, errors.New("timeout"))

	_, err := svc.Skills(ctx)
	assert.ErrorContains(t, err, "timeout")
}

func TestCatalogService_SyncFromQuestions(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewCatalogService(repo, discardLogger())

	questions := []*models.SourceQuestion{
		{Section: "Reading and Writing", Domain: "Craft and Structure", Skill: "Words in Context"},
		{Section: "Math", Domain: "Algebra", Skill: "Linear functions"},
		{Section: "Math", Domain: "Algebra", Skill: "Linear functions"},
		{Section: "Math"},
	}

	repo.skills.On("Upsert", ctx, []*models.Skill{
		{Code: "linear-functions", Description: "Linear functions", Domain: "Algebra", Section: "Math"},
		{Code: "words-in-context", Description: "Words in Context", Domain: "Craft and Structure", Section: "Reading and Writing"},
	}).Return(nil)
	repo.modules.On("Upsert", ctx, mock.MatchedBy(func(ms []*models.Module) bool {
		return len(ms) == 2 && ms[0].Name == "Math" && ms[1].Name == "Reading and Writing"
	})).Return(nil)

	require.NoError(t, svc.SyncFromQuestions(ctx, questions))
	repo.skills.AssertExpectations(t)
	repo.modules.AssertExpectations(t)
}

func TestSkillCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Linear equations in one variable", "linear-equations-in-one-variable"},
		{"Form, Structure, and Sense", "form-structure-and-sense"},
		{"  Rhetorical Synthesis  ", "rhetorical-synthesis"},
		{"Ratios, rates, proportional relationships, and units", "ratios-rates-proportional-relationships-and-units"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SkillCode(tt.in), tt.in)
	}
}
