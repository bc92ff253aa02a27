package normalizer

import (
	"fmt"
	"strconv"
	"strings"
)

// Every logical field resolves from an ordered list of source-key candidates;
// the first key holding a non-empty value wins. The lists cover the three
// historical conventions the dashboard has had to ingest: the camelCase
// Android-app export, the snake_case internal format, and the flat legacy
// question list. Keep the canonical key in each list so normalizing an
// already-canonical document is a no-op.

var questionAliases = map[string][]string{
	"id":                    {"id", "questionId", "question_id", "quizId"},
	"question_number":       {"question_number", "questionNumber", "number"},
	"question_text":         {"questionText", "quizText", "question_text", "question"},
	"question_type":         {"question_type", "questionType", "type"},
	"image_url":             {"questionImageUrl", "imageUrl", "image_url", "question_image_url", "image"},
	"video_url":             {"videoUrl", "video_url", "video"},
	"audio_url":             {"audioUrl", "audio_url", "audio"},
	"correct_answer":        {"correct_answer", "correctAnswer", "answer"},
	"marks":                 {"marks", "points", "mark", "score"},
	"is_free":               {"is_free", "isFree", "free"},
	"difficulty":            {"difficulty", "difficultyLevel", "difficulty_level"},
	"time_seconds":          {"time_seconds", "timeSeconds", "timeAllocation", "time_allocation"},
	"explanation":           {"explanation", "answerExplanation", "explanation_text"},
	"explanation_image_url": {"explanation_image_url", "explanationImageUrl"},
	"learning_objective":    {"learning_objective", "learningObjective", "objective"},
	"options":               {"options", "choices"},
	"is_correct_answer":     {"isCorrectAnswer", "is_correct_answer", "correctAnswer"},
	"column_a":              {"column_a", "columnA"},
	"column_b":              {"column_b", "columnB"},
	"items":                 {"items", "ordering_items", "orderingItems"},
}

var optionAliases = map[string][]string{
	"letter":     {"letter", "optionLetter", "option_letter", "label"},
	"text":       {"text", "optionText", "option_text"},
	"image_url":  {"image_url", "optionImageUrl", "option_image_url", "image"},
	"is_correct": {"is_correct", "isCorrect", "correct"},
	"feedback":   {"feedback", "feedbackText", "feedback_text"},
}

var matchItemAliases = map[string][]string{
	"item_letter":   {"item_letter", "itemLetter", "letter", "label"},
	"item_text":     {"item_text", "itemText", "text"},
	"image_url":     {"image_url", "imageUrl", "image"},
	"correct_match": {"correct_match", "correctMatch", "match"},
}

var orderItemAliases = map[string][]string{
	"item_text":        {"item_text", "itemText", "text"},
	"correct_position": {"correct_position", "correctPosition", "position"},
}

var sectionAliases = map[string][]string{
	"section_id":   {"section_id", "sectionId"},
	"section_name": {"section_name", "sectionName", "name", "title"},
	"description":  {"description", "sectionDescription"},
	"instructions": {"instructions", "instruction_list"},
	"image_url":    {"image_url", "imageUrl", "image"},
	"questions":    {"questions", "quizzes", "items"},
}

var templateAliases = map[string][]string{
	"title":       {"title", "quizTitle", "paper_title", "name"},
	"description": {"description", "quizDescription"},
	"paper_info":  {"paper_info", "paperInfo"},
	"sections":    {"sections"},
	"questions":   {"questions"},
}

var paperInfoAliases = map[string][]string{
	"subject":          {"subject", "subjectName", "subject_name"},
	"paper_number":     {"paper_number", "paperNumber", "paper"},
	"level":            {"level", "examLevel", "exam_level"},
	"paper_type":       {"paper_type", "paperType", "type"},
	"duration_minutes": {"duration_minutes", "durationMinutes", "duration"},
}

// asString renders scalar JSON values so numeric identifiers survive the trip
// through encoding/json's float64 decoding.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func lookupString(m map[string]any, field string, table map[string][]string) string {
	for _, key := range table[field] {
		if v, ok := m[key]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func lookupBool(m map[string]any, field string, table map[string][]string) (bool, bool) {
	for _, key := range table[field] {
		switch v := m[key].(type) {
		case bool:
			return v, true
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		}
	}
	return false, false
}

func lookupInt(m map[string]any, field string, table map[string][]string) (int, bool) {
	for _, key := range table[field] {
		switch v := m[key].(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case int64:
			return int(v), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func lookupSlice(m map[string]any, field string, table map[string][]string) []any {
	for _, key := range table[field] {
		if v, ok := m[key].([]any); ok && len(v) > 0 {
			return v
		}
	}
	return nil
}

// lookupSliceOK reports whether any alias key holds an array at all, so shape
// detection can tell an explicitly empty list apart from a missing one.
func lookupSliceOK(m map[string]any, field string, table map[string][]string) ([]any, bool) {
	for _, key := range table[field] {
		if v, ok := m[key].([]any); ok {
			return v, true
		}
	}
	return nil, false
}

func lookupStringSlice(m map[string]any, field string, table map[string][]string) []string {
	raw := lookupSlice(m, field, table)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s := asString(v); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func lookupMap(m map[string]any, field string, table map[string][]string) map[string]any {
	for _, key := range table[field] {
		if v, ok := m[key].(map[string]any); ok {
			return v
		}
	}
	return nil
}

// asMaps filters a raw slice down to its object elements.
func asMaps(raw []any) []map[string]any {
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// letterFor returns the default option label for an index: A, B, ..., Z, AA.
func letterFor(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("A%s", string(rune('A'+i-26)))
}
