package models

import "time"

// SourceQuestion is one record of the cleaned question file consumed by bulk
// load and produced by the converter.
type SourceQuestion struct {
	ID         string        `json:"id"`
	Program    string        `json:"program"`
	Section    string        `json:"section"`
	Domain     string        `json:"domain"`
	Skill      string        `json:"skill"`
	Difficulty Difficulty    `json:"difficulty"`
	Type       QuestionType  `json:"type"`
	Visuals    SourceVisuals `json:"visuals"`
	Question   SourceContent `json:"question"`
	ImageURL   *string       `json:"image_url"`
}

type SourceVisuals struct {
	Type       *string `json:"type"`
	SVGContent *string `json:"svg_content"`
}

type SourceContent struct {
	Paragraph     *string  `json:"paragraph"`
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer []string `json:"correct_answer"`
	Explanation   *string  `json:"explanation"`
}

// ToQuestion maps a source record onto a storable Question.
func (s *SourceQuestion) ToQuestion() *Question {
	program := s.Program
	if program == "" {
		program = "SAT"
	}
	return &Question{
		QuestionID:    s.ID,
		Program:       program,
		Section:       s.Section,
		Domain:        s.Domain,
		Skill:         s.Skill,
		Difficulty:    s.Difficulty,
		Type:          s.Type,
		Paragraph:     s.Question.Paragraph,
		QuestionText:  s.Question.Question,
		Choices:       append([]string{}, s.Question.Choices...),
		CorrectAnswer: append([]string{}, s.Question.CorrectAnswer...),
		Explanation:   s.Question.Explanation,
		VisualType:    s.Visuals.Type,
		SVGContent:    s.Visuals.SVGContent,
		ImageURL:      s.ImageURL,
	}
}

type ImportValidationError struct {
	Row      int    `json:"row"`
	Column   string `json:"column"`
	Message  string `json:"message"`
	Value    string `json:"value"`
	SourceID string `json:"sourceId,omitempty"`
}

// BulkLoadSummary reports the outcome of a bulk load.
type BulkLoadSummary struct {
	Message        string                  `json:"message"`
	Processed      int                     `json:"processed"`
	Skipped        int                     `json:"skipped"`
	Errors         int                     `json:"errors"`
	Failures       []ImportValidationError `json:"failures,omitempty"`
	ProcessingTime time.Duration           `json:"processingTime"`
}

type ExportFormat string

const (
	ExportXLSX     ExportFormat = "xlsx"
	ExportMarkdown ExportFormat = "md"
)
