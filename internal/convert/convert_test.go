package convert

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `{
  "b2": {
    "module": "math",
    "primary_class_cd_desc": "Algebra",
    "skill_desc": "Linear equations in one variable",
    "difficulty": "H",
    "content": {
      "type": "spr",
      "stem": "<p>Solve <math alttext=\"x+1=3\"><mi>x</mi></math></p>",
      "rationale": "<p>Subtract 1.</p>",
      "correct_answer": ["2"]
    }
  },
  "a1": {
    "program": "PSAT",
    "module": "reading",
    "primary_class_cd_desc": "Craft and Structure",
    "skill_desc": "Words in Context",
    "difficulty": "e",
    "content": {
      "type": "mcq",
      "stem": "Which choice completes the text?",
      "answerOptions": [
        {"id": "A", "content": "<p>  quick &amp; <b>bold</b> </p>"},
        {"id": "B"},
        {"id": "C", "content": "slow"}
      ],
      "correct_answer": ["A"]
    }
  }
}`

func TestTransform(t *testing.T) {
	out, err := Transform(strings.NewReader(sampleDump))
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, "PSAT", first.Program)
	assert.Equal(t, "Reading and Writing", first.Section)
	assert.Equal(t, "Craft and Structure", first.Domain)
	assert.Equal(t, "Words in Context", first.Skill)
	assert.Equal(t, models.DifficultyEasy, first.Difficulty)
	assert.Equal(t, models.MultipleChoice, first.Type)
	assert.Equal(t, []string{"quick & bold", "slow"}, first.Question.Choices)
	assert.Equal(t, []string{"A"}, first.Question.CorrectAnswer)
	assert.Nil(t, first.Question.Explanation)
	assert.Nil(t, first.Question.Paragraph)

	second := out[1]
	assert.Equal(t, "b2", second.ID)
	assert.Equal(t, "SAT", second.Program)
	assert.Equal(t, "Math", second.Section)
	assert.Equal(t, models.DifficultyHard, second.Difficulty)
	assert.Equal(t, models.GridIn, second.Type)
	assert.Nil(t, second.Question.Choices)
	assert.Contains(t, second.Question.Question, `alttext="x+1=3"`)
	require.NotNil(t, second.Question.Explanation)
	assert.Equal(t, "<p>Subtract 1.</p>", *second.Question.Explanation)
}

func TestTransform_MissingCorrectAnswerIsEmpty(t *testing.T) {
	out, err := Transform(strings.NewReader(`{"x": {"content": {"stem": "s"}}}`))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Question.CorrectAnswer)
	assert.Empty(t, out[0].Question.CorrectAnswer)
	assert.Equal(t, models.DifficultyMedium, out[0].Difficulty)
	assert.Equal(t, models.MultipleChoice, out[0].Type)
}

func TestTransform_RejectsNonObject(t *testing.T) {
	_, err := Transform(strings.NewReader(`[1, 2]`))
	assert.Error(t, err)
}

func TestMappings(t *testing.T) {
	tests := []struct {
		letter string
		want   models.Difficulty
	}{
		{"E", models.DifficultyEasy},
		{"m", models.DifficultyMedium},
		{"H", models.DifficultyHard},
		{"", models.DifficultyMedium},
		{"X", models.DifficultyMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Difficulty(tt.letter), tt.letter)
	}

	assert.Equal(t, models.GridIn, QuestionType("spr"))
	assert.Equal(t, models.MultipleChoice, QuestionType("mcq"))
	assert.Equal(t, "Math", Section("math"))
	assert.Equal(t, "Reading and Writing", Section("english"))
}

func TestWrite(t *testing.T) {
	out, err := Transform(strings.NewReader(sampleDump))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, out))
	assert.Contains(t, buf.String(), "\n  {")
	assert.Contains(t, buf.String(), `<math alttext=`)

	var back []models.SourceQuestion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, out, back)
}
