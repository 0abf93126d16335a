package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

const (
	minChoices = 2
	maxChoices = 10
)

// QuestionValidator checks imported question records before they are stored
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateSource returns every problem found in one record. An empty result
// means the record can be stored. A nil record (a JSON null) fails on id.
func (v *QuestionValidator) ValidateSource(q *models.SourceQuestion) ValidationErrors {
	var errs ValidationErrors
	add := errs.Add

	if q == nil {
		add("id", "is required", nil)
		return errs
	}
	if strings.TrimSpace(q.ID) == "" {
		add("id", "is required", q.ID)
	} else if len(q.ID) > 64 {
		add("id", "must be at most 64 characters", q.ID)
	}
	if strings.TrimSpace(q.Section) == "" {
		add("section", "is required", q.Section)
	}
	if !q.Difficulty.Valid() {
		add("difficulty", "must be 1, 2 or 3", int(q.Difficulty))
	}
	if !q.Type.Valid() {
		add("type", fmt.Sprintf("must be %s or %s", models.MultipleChoice, models.GridIn), string(q.Type))
	}
	if strings.TrimSpace(q.Question.Question) == "" {
		add("question.question", "is required", nil)
	}

	switch q.Type {
	case models.MultipleChoice:
		errs = append(errs, v.validateMultipleChoice(q.Question)...)
	case models.GridIn:
		if len(q.Question.Choices) > 0 {
			add("question.choices", "must be empty for grid-in", len(q.Question.Choices))
		}
		if len(q.Question.CorrectAnswer) == 0 {
			add("question.correct_answer", "must have at least 1 accepted answer", nil)
		}
	}

	return errs
}

func (v *QuestionValidator) validateMultipleChoice(c models.SourceContent) ValidationErrors {
	var errs ValidationErrors

	if len(c.Choices) < minChoices || len(c.Choices) > maxChoices {
		errs.Add("question.choices", fmt.Sprintf("must have between %d and %d choices", minChoices, maxChoices), len(c.Choices))
	}
	if len(c.CorrectAnswer) == 0 {
		errs.Add("question.correct_answer", "must have at least 1 correct answer", nil)
	}

	return errs
}
