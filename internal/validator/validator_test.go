package validator

import (
	"testing"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestValidator_ListQuestionsRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.ListQuestionsRequest
		wantField string
	}{
		{name: "empty request", req: models.ListQuestionsRequest{}},
		{name: "all filters", req: models.ListQuestionsRequest{
			Page: 2, Limit: 100, Section: "Math", Skill: "linear",
			Difficulty: intPtr(3), Type: "grid-in", QuestionID: "abc123",
		}},
		{name: "limit too large", req: models.ListQuestionsRequest{Limit: 101}, wantField: "limit"},
		{name: "negative page", req: models.ListQuestionsRequest{Page: -1}, wantField: "page"},
		{name: "page too large", req: models.ListQuestionsRequest{Page: models.MaxPage + 1, Limit: 100}, wantField: "page"},
		{name: "last allowed page", req: models.ListQuestionsRequest{Page: models.MaxPage, Limit: 100}},
		{name: "difficulty out of range", req: models.ListQuestionsRequest{Difficulty: intPtr(4)}, wantField: "difficulty"},
		{name: "difficulty zero", req: models.ListQuestionsRequest{Difficulty: intPtr(0)}, wantField: "difficulty"},
		{name: "unknown type", req: models.ListQuestionsRequest{Type: "essay"}, wantField: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs, ok := err.(ValidationErrors)
			require.True(t, ok, "expected ValidationErrors, got %T", err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func validSource() *models.SourceQuestion {
	return &models.SourceQuestion{
		ID:         "q1",
		Section:    "Math",
		Difficulty: models.DifficultyMedium,
		Type:       models.MultipleChoice,
		Question: models.SourceContent{
			Question:      "What is <math alttext=\"x\"><mi>x</mi></math>?",
			Choices:       []string{"1", "2", "3", "4"},
			CorrectAnswer: []string{"B"},
		},
	}
}

func TestQuestionValidator_ValidateSource(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name       string
		mutate     func(q *models.SourceQuestion)
		wantFields []string
	}{
		{name: "valid multiple choice", mutate: func(q *models.SourceQuestion) {}},
		{name: "valid grid-in", mutate: func(q *models.SourceQuestion) {
			q.Type = models.GridIn
			q.Question.Choices = nil
			q.Question.CorrectAnswer = []string{"3/4", ".75"}
		}},
		{name: "missing id", mutate: func(q *models.SourceQuestion) { q.ID = " " }, wantFields: []string{"id"}},
		{name: "missing section", mutate: func(q *models.SourceQuestion) { q.Section = "" }, wantFields: []string{"section"}},
		{name: "bad difficulty", mutate: func(q *models.SourceQuestion) { q.Difficulty = 0 }, wantFields: []string{"difficulty"}},
		{name: "bad type", mutate: func(q *models.SourceQuestion) { q.Type = "essay" }, wantFields: []string{"type"}},
		{name: "empty stem", mutate: func(q *models.SourceQuestion) { q.Question.Question = "" }, wantFields: []string{"question.question"}},
		{name: "too few choices", mutate: func(q *models.SourceQuestion) { q.Question.Choices = []string{"1"} }, wantFields: []string{"question.choices"}},
		{name: "no correct answer", mutate: func(q *models.SourceQuestion) { q.Question.CorrectAnswer = nil }, wantFields: []string{"question.correct_answer"}},
		{name: "grid-in without answer", mutate: func(q *models.SourceQuestion) {
			q.Type = models.GridIn
			q.Question.Choices = nil
			q.Question.CorrectAnswer = nil
		}, wantFields: []string{"question.correct_answer"}},
		{name: "grid-in with choices", mutate: func(q *models.SourceQuestion) {
			q.Type = models.GridIn
			q.Question.Choices = []string{"A", "B"}
			q.Question.CorrectAnswer = []string{"2"}
		}, wantFields: []string{"question.choices"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validSource()
			tt.mutate(q)

			errs := v.ValidateSource(q)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestQuestionValidator_NilRecord(t *testing.T) {
	errs := NewQuestionValidator().ValidateSource(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "id", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
}
