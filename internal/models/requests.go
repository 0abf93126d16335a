package models

// ListQuestionsRequest carries the query parameters of a question listing
type ListQuestionsRequest struct {
	Page       int    `form:"page" json:"page" validate:"omitempty,min=1,max=100000"`
	Limit      int    `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Section    string `form:"section" json:"section" validate:"max=100"`
	Domain     string `form:"domain" json:"domain" validate:"max=200"`
	Skill      string `form:"skill" json:"skill" validate:"max=200"`
	Difficulty *int   `form:"difficulty" json:"difficulty" validate:"omitempty,difficulty_level"`
	Type       string `form:"type" json:"type" validate:"omitempty,question_type"`
	QuestionID string `form:"questionId" json:"questionId" validate:"max=64"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from overflowing
	MaxPage = 100000
)

// Normalize fills in the default page and limit
func (r *ListQuestionsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
}

// Offset is the number of rows skipped before the current page
func (r *ListQuestionsRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
