package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/sat-practice-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const questionsSheet = "Questions"

// Column order of the workbook written by export and read by import.
// Choices and Correct Answer hold JSON arrays.
var xlsxHeaders = []string{
	"Question ID", "Program", "Section", "Domain", "Skill", "Difficulty", "Type",
	"Paragraph", "Question", "Choices", "Correct Answer", "Explanation",
	"Visual Type", "SVG Content", "Image URL",
}

func questionToRow(q *models.Question) []interface{} {
	return []interface{}{
		q.QuestionID, q.Program, q.Section, q.Domain, q.Skill, int(q.Difficulty), string(q.Type),
		clip(deref(q.Paragraph)), clip(q.QuestionText), clip(jsonList(q.Choices)), clip(jsonList(q.CorrectAnswer)),
		clip(deref(q.Explanation)), deref(q.VisualType), clip(deref(q.SVGContent)), deref(q.ImageURL),
	}
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// clip keeps a value within the cell size Excel accepts
func clip(s string) string {
	if len(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:min(len([]rune(s)), excelize.TotalCellChars)])
}

func writeQuestionsWorkbook(questions []*models.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(questionsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := make([]interface{}, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(questionsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}

	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := questionToRow(q)
		if err := f.SetSheetRow(questionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// parseWorkbookRows turns workbook rows into source records. Rows that cannot
// be read are reported as failures with their 1-based sheet row number.
func parseWorkbookRows(rows [][]string) ([]*models.SourceQuestion, []models.ImportValidationError) {
	if len(rows) == 0 {
		return nil, nil
	}

	headerMap := make(map[string]int)
	for i, h := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var (
		records  []*models.SourceQuestion
		failures []models.ImportValidationError
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		get := func(header string) string {
			idx, ok := headerMap[strings.ToLower(header)]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		q := &models.SourceQuestion{
			ID:      strings.TrimSpace(get("Question ID")),
			Program: get("Program"),
			Section: get("Section"),
			Domain:  get("Domain"),
			Skill:   get("Skill"),
			Type:    models.QuestionType(strings.TrimSpace(get("Type"))),
			Visuals: models.SourceVisuals{
				Type:       optional(get("Visual Type")),
				SVGContent: optional(get("SVG Content")),
			},
			Question: models.SourceContent{
				Paragraph:   optional(get("Paragraph")),
				Question:    get("Question"),
				Explanation: optional(get("Explanation")),
			},
			ImageURL: optional(get("Image URL")),
		}

		fail := func(column, message, value string) {
			failures = append(failures, models.ImportValidationError{
				Row: rowNum, Column: column, Message: message, Value: value, SourceID: q.ID,
			})
		}

		difficulty, err := strconv.Atoi(strings.TrimSpace(get("Difficulty")))
		if err != nil {
			fail("Difficulty", "must be a number", get("Difficulty"))
			continue
		}
		q.Difficulty = models.Difficulty(difficulty)

		if q.Question.Choices, err = parseJSONList(get("Choices")); err != nil {
			fail("Choices", "must be a JSON array of strings", get("Choices"))
			continue
		}
		if q.Question.CorrectAnswer, err = parseJSONList(get("Correct Answer")); err != nil {
			fail("Correct Answer", "must be a JSON array of strings", get("Correct Answer"))
			continue
		}

		records = append(records, q)
	}
	return records, failures
}

func parseJSONList(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(cell), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
