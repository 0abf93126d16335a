package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	GridIn         QuestionType = "grid-in"
)

// Label returns the display name shown next to a question.
func (t QuestionType) Label() string {
	switch t {
	case MultipleChoice:
		return "Multiple Choice"
	case GridIn:
		return "Grid-In"
	default:
		return string(t)
	}
}

func (t QuestionType) Valid() bool {
	return t == MultipleChoice || t == GridIn
}

// Difficulty is an ordinal: 1 is easiest.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Question is a stored practice question. Paragraph, QuestionText, Choices and
// Explanation hold raw markup; CorrectAnswer holds plain display strings.
type Question struct {
	ID         string       `json:"id" gorm:"primaryKey;size:36"`
	QuestionID string       `json:"questionId" gorm:"uniqueIndex;not null;size:64"`
	Program    string       `json:"program" gorm:"size:32;default:SAT"`
	Section    string       `json:"section" gorm:"size:100;index"`
	Domain     string       `json:"domain" gorm:"size:200;index"`
	Skill      string       `json:"skill" gorm:"size:200;index"`
	Difficulty Difficulty   `json:"difficulty" gorm:"not null;index"`
	Type       QuestionType `json:"type" gorm:"size:32;not null;index"`

	Paragraph     *string                     `json:"paragraph" gorm:"type:text"`
	QuestionText  string                      `json:"questionText" gorm:"type:text;not null"`
	Choices       datatypes.JSONSlice[string] `json:"choices"`
	CorrectAnswer datatypes.JSONSlice[string] `json:"correctAnswer"`
	Explanation   *string                     `json:"explanation" gorm:"type:text"`

	VisualType *string `json:"visualType" gorm:"size:64"`
	SVGContent *string `json:"svgContent" gorm:"type:text"`
	ImageURL   *string `json:"imageUrl" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

// BeforeCreate assigns an ID to questions created without one.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// Skill is a taxonomy entry for a question skill.
type Skill struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"size:200;not null"`
	Domain      string `json:"domain" gorm:"size:200"`
	Section     string `json:"section" gorm:"size:100"`
}

func (Skill) TableName() string {
	return "skills"
}

// Module is a test section module, e.g. "Math" or "Reading and Writing".
type Module struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Section string `json:"section" gorm:"size:100"`
}

func (Module) TableName() string {
	return "modules"
}

// AllModels lists the tables managed by auto-migration.
func AllModels() []interface{} {
	return []interface{}{&Question{}, &Skill{}, &Module{}}
}
