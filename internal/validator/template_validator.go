package validator

import (
	"fmt"
	"strings"

	"github.com/studyprep/content-service/internal/models"
)

// TemplateValidator gates candidate templates before the preview and upload
// actions become available. It performs no network or storage side effects.
type TemplateValidator struct{}

// NewTemplateValidator creates a new template validator
func NewTemplateValidator() *TemplateValidator {
	return &TemplateValidator{}
}

// ValidateDocument runs the structural checks against a parsed-but-not-yet
// normalized JSON document. Checks run in order and fail fast; every message
// names the offending section/question with 1-based indices.
func (v *TemplateValidator) ValidateDocument(doc any) error {
	root, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("template must be a JSON object")
	}

	if title, _ := root["title"].(string); strings.TrimSpace(title) == "" {
		return fmt.Errorf("template title is required")
	}

	sections, ok := root["sections"].([]any)
	if !ok {
		return fmt.Errorf("template sections must be an array")
	}

	totalQuestions := 0
	totalMarks := 0

	for si, rawSection := range sections {
		section, ok := rawSection.(map[string]any)
		if !ok {
			return fmt.Errorf("section %d: must be an object", si+1)
		}

		questions, ok := section["questions"].([]any)
		if !ok {
			return fmt.Errorf("section %d: questions array is missing", si+1)
		}

		for qi, rawQuestion := range questions {
			question, ok := rawQuestion.(map[string]any)
			if !ok {
				return fmt.Errorf("section %d, question %d: must be an object", si+1, qi+1)
			}
			if err := v.checkQuestionDocument(question, si+1, qi+1); err != nil {
				return err
			}
			totalQuestions++
			if marks, ok := question["marks"].(float64); ok {
				totalMarks += int(marks)
			}
		}
	}

	// Recompute roll-up totals; supplied values are never trusted.
	paperInfo, ok := root["paper_info"].(map[string]any)
	if !ok {
		paperInfo = map[string]any{}
		root["paper_info"] = paperInfo
	}
	paperInfo["total_questions"] = totalQuestions
	paperInfo["total_marks"] = totalMarks

	return nil
}

func (v *TemplateValidator) checkQuestionDocument(q map[string]any, section, question int) error {
	at := fmt.Sprintf("section %d, question %d", section, question)

	if id, _ := q["id"].(string); strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s: id is required", at)
	}
	if text, _ := q["question_text"].(string); strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s: question_text is required", at)
	}

	rawType, _ := q["question_type"].(string)
	if strings.TrimSpace(rawType) == "" {
		return fmt.Errorf("%s: question_type is required", at)
	}
	questionType := models.QuestionType(rawType)
	if !questionType.Valid() {
		return fmt.Errorf("%s: question_type %q is not a recognized type", at, rawType)
	}

	if questionType.ChoiceBased() {
		options, _ := q["options"].([]any)
		if len(options) == 0 {
			return fmt.Errorf("%s: %s questions require a non-empty options array", at, questionType)
		}
	}

	if questionType == models.Matching {
		if _, ok := q["column_a"].([]any); !ok {
			return fmt.Errorf("%s: matching questions require column_a", at)
		}
		if _, ok := q["column_b"].([]any); !ok {
			return fmt.Errorf("%s: matching questions require column_b", at)
		}
	}

	if questionType == models.Ordering {
		if _, ok := q["items"].([]any); !ok {
			return fmt.Errorf("%s: ordering questions require items", at)
		}
	}

	return nil
}

// ValidateTemplate runs the same ordered structural checks against the typed
// canonical model, plus the per-type content invariants, and recomputes the
// paper_info totals on success. Used on the save path, where the document has
// already been assembled into the canonical shape.
func (v *TemplateValidator) ValidateTemplate(t *models.Template) error {
	if t == nil {
		return fmt.Errorf("template is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("template title is required")
	}
	if t.Sections == nil {
		return fmt.Errorf("template sections must be an array")
	}

	for si, section := range t.Sections {
		if section.Questions == nil {
			return fmt.Errorf("section %d: questions array is missing", si+1)
		}
		for qi, q := range section.Questions {
			if err := v.checkQuestion(&q, si+1, qi+1); err != nil {
				return err
			}
		}
	}

	v.RecomputeTotals(t)
	return nil
}

func (v *TemplateValidator) checkQuestion(q *models.Question, section, question int) error {
	at := fmt.Sprintf("section %d, question %d", section, question)

	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%s: id is required", at)
	}
	if strings.TrimSpace(q.QuestionText) == "" {
		return fmt.Errorf("%s: question_text is required", at)
	}
	if q.QuestionType == "" {
		return fmt.Errorf("%s: question_type is required", at)
	}
	if !q.QuestionType.Valid() {
		return fmt.Errorf("%s: question_type %q is not a recognized type", at, q.QuestionType)
	}

	switch {
	case q.QuestionType.ChoiceBased():
		return v.checkChoiceContent(q, at)
	case q.QuestionType == models.Matching:
		return v.checkMatchingContent(q, at)
	case q.QuestionType == models.Ordering:
		return v.checkOrderingContent(q, at)
	}
	return nil
}

func (v *TemplateValidator) checkChoiceContent(q *models.Question, at string) error {
	if len(q.Options) == 0 {
		return fmt.Errorf("%s: %s questions require a non-empty options array", at, q.QuestionType)
	}

	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}

	if correct == 0 {
		return fmt.Errorf("%s: at least one option must be marked correct", at)
	}
	if correct > 1 && q.QuestionType != models.MultipleResponse {
		return fmt.Errorf("%s: %s questions allow only one correct option", at, q.QuestionType)
	}
	return nil
}

func (v *TemplateValidator) checkMatchingContent(q *models.Question, at string) error {
	if len(q.ColumnA) == 0 {
		return fmt.Errorf("%s: matching questions require column_a", at)
	}
	if len(q.ColumnB) == 0 {
		return fmt.Errorf("%s: matching questions require column_b", at)
	}

	columnB := make(map[string]bool, len(q.ColumnB))
	for _, item := range q.ColumnB {
		columnB[item.Letter] = true
	}

	for _, item := range q.ColumnA {
		if item.CorrectMatch == "" {
			return fmt.Errorf("%s: column_a item %q is missing correct_match", at, item.Letter)
		}
		if !columnB[item.CorrectMatch] {
			return fmt.Errorf("%s: correct_match %q does not resolve to any column_b item_letter", at, item.CorrectMatch)
		}
	}
	return nil
}

func (v *TemplateValidator) checkOrderingContent(q *models.Question, at string) error {
	if len(q.Items) == 0 {
		return fmt.Errorf("%s: ordering questions require items", at)
	}

	seen := make(map[int]bool, len(q.Items))
	for _, item := range q.Items {
		if item.CorrectPosition < 1 || item.CorrectPosition > len(q.Items) {
			return fmt.Errorf("%s: item positions must form a contiguous 1..%d sequence", at, len(q.Items))
		}
		if seen[item.CorrectPosition] {
			return fmt.Errorf("%s: duplicate item position %d", at, item.CorrectPosition)
		}
		seen[item.CorrectPosition] = true
	}
	return nil
}

// RecomputeTotals writes the recomputed question count and mark sum back into
// paper_info. Questions without marks contribute zero to the sum.
func (v *TemplateValidator) RecomputeTotals(t *models.Template) {
	questions, marks := 0, 0
	for _, s := range t.Sections {
		questions += len(s.Questions)
		for _, q := range s.Questions {
			marks += q.Marks
		}
	}
	t.PaperInfo.TotalQuestions = questions
	t.PaperInfo.TotalMarks = marks
}
