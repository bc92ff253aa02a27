package normalizer

import (
	"fmt"
	"strings"

	"github.com/studyprep/content-service/internal/models"
)

// Default section used when a legacy flat question list arrives without any
// section structure of its own.
const (
	DefaultSectionID   = "default_section"
	DefaultSectionName = "Main Section"
)

// Normalize maps a parsed question document of any of the three known shapes
// onto the canonical template model:
//
//  1. an object with a "sections" array (nested template),
//  2. an object with a top-level "questions" array (flat with metadata),
//  3. a bare question array (legacy list, wrapped into one synthetic section).
//
// Detection is top-down and first match wins. Anything else produces an empty
// template so the caller always has something to render; Normalize is pure
// and never fails.
func Normalize(doc any) *models.Template {
	switch v := doc.(type) {
	case map[string]any:
		if raw, ok := lookupSliceOK(v, "sections", templateAliases); ok {
			return finish(normalizeNested(v, raw))
		}
		if raw, ok := lookupSliceOK(v, "questions", templateAliases); ok {
			return finish(normalizeFlat(v, raw))
		}
	case []any:
		return finish(wrapLegacy(v))
	}
	return finish(&models.Template{Sections: []models.Section{}})
}

func normalizeNested(m map[string]any, rawSections []any) *models.Template {
	t := normalizeMetadata(m)
	t.Sections = make([]models.Section, 0, len(rawSections))
	for i, sm := range asMaps(rawSections) {
		t.Sections = append(t.Sections, normalizeSection(sm, i))
	}
	return t
}

func normalizeFlat(m map[string]any, rawQuestions []any) *models.Template {
	t := normalizeMetadata(m)
	section := models.Section{
		SectionID:   DefaultSectionID,
		SectionName: DefaultSectionName,
		Questions:   normalizeQuestions(rawQuestions),
	}
	t.Sections = []models.Section{section}
	return t
}

func wrapLegacy(raw []any) *models.Template {
	return &models.Template{
		Sections: []models.Section{{
			SectionID:   DefaultSectionID,
			SectionName: DefaultSectionName,
			Questions:   normalizeQuestions(raw),
		}},
	}
}

func normalizeMetadata(m map[string]any) *models.Template {
	t := &models.Template{
		Title:       lookupString(m, "title", templateAliases),
		Description: lookupString(m, "description", templateAliases),
	}
	if pi := lookupMap(m, "paper_info", templateAliases); pi != nil {
		t.PaperInfo = models.PaperInfo{
			Subject:     lookupString(pi, "subject", paperInfoAliases),
			PaperNumber: lookupString(pi, "paper_number", paperInfoAliases),
			Level:       lookupString(pi, "level", paperInfoAliases),
			PaperType:   lookupString(pi, "paper_type", paperInfoAliases),
		}
		if d, ok := lookupInt(pi, "duration_minutes", paperInfoAliases); ok {
			t.PaperInfo.DurationMinutes = d
		}
	}
	return t
}

func normalizeSection(m map[string]any, index int) models.Section {
	s := models.Section{
		SectionID:    lookupString(m, "section_id", sectionAliases),
		SectionName:  lookupString(m, "section_name", sectionAliases),
		Description:  lookupString(m, "description", sectionAliases),
		Instructions: lookupStringSlice(m, "instructions", sectionAliases),
		ImageURL:     lookupString(m, "image_url", sectionAliases),
		Questions:    []models.Question{},
	}
	if s.SectionID == "" {
		s.SectionID = fmt.Sprintf("sec_%d", index+1)
	}
	if s.SectionName == "" {
		s.SectionName = fmt.Sprintf("Section %d", index+1)
	}
	if raw := lookupSlice(m, "questions", sectionAliases); raw != nil {
		s.Questions = normalizeQuestions(raw)
	}
	return s
}

func normalizeQuestions(raw []any) []models.Question {
	out := make([]models.Question, 0, len(raw))
	for i, qm := range asMaps(raw) {
		out = append(out, normalizeQuestion(qm, i))
	}
	return out
}

func normalizeQuestion(m map[string]any, index int) models.Question {
	q := models.Question{
		ID:                lookupString(m, "id", questionAliases),
		QuestionText:      lookupString(m, "question_text", questionAliases),
		QuestionType:      mapQuestionType(lookupString(m, "question_type", questionAliases)),
		ImageURL:          lookupString(m, "image_url", questionAliases),
		VideoURL:          lookupString(m, "video_url", questionAliases),
		AudioURL:          lookupString(m, "audio_url", questionAliases),
		CorrectAnswer:     lookupString(m, "correct_answer", questionAliases),
		Explanation:       lookupString(m, "explanation", questionAliases),
		ExplanationImage:  lookupString(m, "explanation_image_url", questionAliases),
		LearningObjective: lookupString(m, "learning_objective", questionAliases),
		Options:           []models.Option{},
	}

	if q.ID == "" {
		q.ID = fmt.Sprintf("q_%d", index+1)
	}
	if n, ok := lookupInt(m, "question_number", questionAliases); ok {
		q.QuestionNumber = n
	} else {
		q.QuestionNumber = index + 1
	}
	if marks, ok := lookupInt(m, "marks", questionAliases); ok && marks > 0 {
		q.Marks = marks
	} else {
		q.Marks = 1
	}
	if free, ok := lookupBool(m, "is_free", questionAliases); ok {
		q.IsFree = &free
	}
	if d := strings.ToLower(lookupString(m, "difficulty", questionAliases)); d != "" {
		q.Difficulty = models.DifficultyLevel(d)
	}
	if t, ok := lookupInt(m, "time_seconds", questionAliases); ok {
		q.TimeSeconds = t
	}

	if raw := lookupSlice(m, "options", questionAliases); raw != nil {
		q.Options = normalizeOptions(raw)
	}

	switch q.QuestionType {
	case models.TrueFalse:
		if len(q.Options) == 0 {
			if answer, ok := lookupBool(m, "is_correct_answer", questionAliases); ok {
				q.Options = synthesizeTrueFalse(answer)
			}
		}
	case models.FillInBlank:
		if q.CorrectAnswer == "" {
			for _, opt := range q.Options {
				if opt.IsCorrect {
					q.CorrectAnswer = opt.Text
					break
				}
			}
		}
	case models.Matching:
		q.ColumnA = normalizeMatchItems(lookupSlice(m, "column_a", questionAliases))
		q.ColumnB = normalizeMatchItems(lookupSlice(m, "column_b", questionAliases))
	case models.Ordering:
		q.Items = normalizeOrderItems(lookupSlice(m, "items", questionAliases))
	}

	return q
}

func normalizeOptions(raw []any) []models.Option {
	out := make([]models.Option, 0, len(raw))
	for i, om := range asMaps(raw) {
		opt := models.Option{
			Letter:   lookupString(om, "letter", optionAliases),
			Text:     lookupString(om, "text", optionAliases),
			ImageURL: lookupString(om, "image_url", optionAliases),
			Feedback: lookupString(om, "feedback", optionAliases),
		}
		if opt.Letter == "" {
			opt.Letter = letterFor(i)
		}
		if correct, ok := lookupBool(om, "is_correct", optionAliases); ok {
			opt.IsCorrect = correct
		}
		out = append(out, opt)
	}
	return out
}

func synthesizeTrueFalse(answer bool) []models.Option {
	return []models.Option{
		{Letter: "A", Text: "True", IsCorrect: answer},
		{Letter: "B", Text: "False", IsCorrect: !answer},
	}
}

func normalizeMatchItems(raw []any) []models.MatchItem {
	if raw == nil {
		return nil
	}
	out := make([]models.MatchItem, 0, len(raw))
	for i, im := range asMaps(raw) {
		item := models.MatchItem{
			Letter:       lookupString(im, "item_letter", matchItemAliases),
			Text:         lookupString(im, "item_text", matchItemAliases),
			ImageURL:     lookupString(im, "image_url", matchItemAliases),
			CorrectMatch: lookupString(im, "correct_match", matchItemAliases),
		}
		if item.Letter == "" {
			item.Letter = letterFor(i)
		}
		out = append(out, item)
	}
	return out
}

func normalizeOrderItems(raw []any) []models.OrderItem {
	if raw == nil {
		return nil
	}
	out := make([]models.OrderItem, 0, len(raw))
	for i, im := range asMaps(raw) {
		item := models.OrderItem{
			Text: lookupString(im, "item_text", orderItemAliases),
		}
		if pos, ok := lookupInt(im, "correct_position", orderItemAliases); ok {
			item.CorrectPosition = pos
		} else {
			item.CorrectPosition = i + 1
		}
		out = append(out, item)
	}
	return out
}

// mapQuestionType folds external type tags onto the internal closed set.
// Uppercase app-export tags are recognized alongside the canonical lowercase
// ones; anything unrecognized or absent defaults to multiple_choice.
func mapQuestionType(raw string) models.QuestionType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MULTIPLE_CHOICE":
		return models.MultipleChoice
	case "TRUE_FALSE":
		return models.TrueFalse
	case "SHORT_ANSWER":
		return models.ShortAnswer
	case "FILL_IN_BLANK", "FILL_IN_THE_BLANK":
		return models.FillInBlank
	case "SHORT_ESSAY":
		return models.ShortEssay
	case "MATCHING":
		return models.Matching
	case "ORDERING":
		return models.Ordering
	case "MULTIPLE_RESPONSE":
		return models.MultipleResponse
	default:
		return models.MultipleChoice
	}
}

// finish recomputes the paper_info totals from the section contents; supplied
// totals are never trusted.
func finish(t *models.Template) *models.Template {
	questions, marks := 0, 0
	for _, s := range t.Sections {
		questions += len(s.Questions)
		for _, q := range s.Questions {
			marks += q.Marks
		}
	}
	t.PaperInfo.TotalQuestions = questions
	t.PaperInfo.TotalMarks = marks
	return t
}
