// Package convert turns the raw College Board question dump into the cleaned
// question format accepted by bulk load.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

// rawQuestion is one entry of the dump, keyed by question id
type rawQuestion struct {
	Program    string     `json:"program"`
	Module     string     `json:"module"`
	Domain     string     `json:"primary_class_cd_desc"`
	Skill      string     `json:"skill_desc"`
	Difficulty string     `json:"difficulty"`
	Content    rawContent `json:"content"`
}

type rawContent struct {
	Type          string      `json:"type"`
	Stem          string      `json:"stem"`
	Rationale     *string     `json:"rationale"`
	AnswerOptions []rawOption `json:"answerOptions"`
	CorrectAnswer []string    `json:"correct_answer"`
}

type rawOption struct {
	ID      string  `json:"id"`
	Content *string `json:"content"`
}

// Transform reads a dump object and returns cleaned questions ordered by id
func Transform(r io.Reader) ([]models.SourceQuestion, error) {
	var dump map[string]rawQuestion
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("failed to decode question dump: %w", err)
	}

	ids := make([]string, 0, len(dump))
	for id := range dump {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.SourceQuestion, 0, len(ids))
	for _, id := range ids {
		q, err := transformOne(id, dump[id])
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", id, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func transformOne(id string, raw rawQuestion) (models.SourceQuestion, error) {
	program := raw.Program
	if program == "" {
		program = "SAT"
	}

	choices, err := cleanChoices(raw.Content.AnswerOptions)
	if err != nil {
		return models.SourceQuestion{}, err
	}

	correct := raw.Content.CorrectAnswer
	if correct == nil {
		correct = []string{}
	}

	return models.SourceQuestion{
		ID:         id,
		Program:    program,
		Section:    Section(raw.Module),
		Domain:     raw.Domain,
		Skill:      raw.Skill,
		Difficulty: Difficulty(raw.Difficulty),
		Type:       QuestionType(raw.Content.Type),
		Question: models.SourceContent{
			Question:      raw.Content.Stem,
			Choices:       choices,
			CorrectAnswer: correct,
			Explanation:   raw.Content.Rationale,
		},
	}, nil
}

// cleanChoices strips markup from each option. A question without options
// keeps nil choices. Options with no content are dropped.
func cleanChoices(options []rawOption) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	choices := make([]string, 0, len(options))
	for _, opt := range options {
		if opt.Content == nil {
			continue
		}
		text, err := stripHTML(*opt.Content)
		if err != nil {
			return nil, err
		}
		choices = append(choices, text)
	}
	return choices, nil
}

func stripHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse choice markup: %w", err)
	}
	return strings.TrimSpace(doc.Text()), nil
}

// Difficulty maps the dump's E/M/H letters; anything else is Medium
func Difficulty(letter string) models.Difficulty {
	switch strings.ToUpper(letter) {
	case "E":
		return models.DifficultyEasy
	case "H":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// QuestionType maps "spr" (student-produced response) to grid-in
func QuestionType(t string) models.QuestionType {
	if t == "spr" {
		return models.GridIn
	}
	return models.MultipleChoice
}

func Section(module string) string {
	if module == "math" {
		return "Math"
	}
	return "Reading and Writing"
}

// Write encodes questions as indented JSON
func Write(w io.Writer, questions []models.SourceQuestion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("failed to write questions: %w", err)
	}
	return nil
}
