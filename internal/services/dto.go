package services

import (
	"github.com/SAP-F-2025/sat-practice-service/internal/content"
	"github.com/SAP-F-2025/sat-practice-service/internal/models"
)

// QuestionListResponse is one page of a filtered question listing
type QuestionListResponse struct {
	Items      []*models.Question `json:"items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"totalPages"`
}

// FilterOptions lists the values a client can filter by
type FilterOptions struct {
	Sections     []string            `json:"sections"`
	Domains      []string            `json:"domains"`
	Skills       []string            `json:"skills"`
	Types        []string            `json:"types"`
	Difficulties []models.Difficulty `json:"difficulties"`
}

// RenderedQuestion is a question with every markup field split into text and
// math segments, plus ready-to-insert HTML for clients without a typesetter.
type RenderedQuestion struct {
	ID              string              `json:"id"`
	QuestionID      string              `json:"questionId"`
	Program         string              `json:"program"`
	Section         string              `json:"section"`
	Domain          string              `json:"domain"`
	Skill           string              `json:"skill"`
	Difficulty      models.Difficulty   `json:"difficulty"`
	DifficultyLabel string              `json:"difficultyLabel"`
	Type            models.QuestionType `json:"type"`
	TypeLabel       string              `json:"typeLabel"`

	Paragraph     content.Content   `json:"paragraph"`
	QuestionText  content.Content   `json:"questionText"`
	Choices       []content.Content `json:"choices"`
	CorrectAnswer []string          `json:"correctAnswer"`
	Explanation   content.Content   `json:"explanation"`
	MathCount     int               `json:"mathCount"`

	HTML RenderedHTML `json:"html"`

	VisualType *string `json:"visualType"`
	SVGContent *string `json:"svgContent"`
	ImageURL   *string `json:"imageUrl"`
}

type RenderedHTML struct {
	Paragraph    string   `json:"paragraph"`
	QuestionText string   `json:"questionText"`
	Choices      []string `json:"choices"`
	Explanation  string   `json:"explanation"`
}

// ExportResult is a generated export file
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Count       int
}
