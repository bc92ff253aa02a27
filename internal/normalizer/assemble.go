package normalizer

import "github.com/studyprep/content-service/internal/models"

// Totals is the roll-up written to paper_info when a document is saved.
type Totals struct {
	TotalQuestions           int `json:"total_questions"`
	TotalMarks               int `json:"total_marks"`
	EstimatedDurationMinutes int `json:"estimated_duration_minutes"`
}

// AssembleSections inverts the load-path normalization: a flat question list,
// each entry tagged with a section_id, is regrouped under its section metadata
// into the nested shape the remote API persists. The section_id tag is
// client-side bookkeeping and is stripped on emission. Sections with no
// matching questions keep an empty questions array rather than being dropped.
func AssembleSections(questions []models.Question, meta []models.SectionMeta) []models.Section {
	sections := make([]models.Section, 0, len(meta))
	for _, m := range meta {
		section := models.Section{
			SectionID:    m.SectionID,
			SectionName:  m.SectionName,
			Description:  m.Description,
			Instructions: m.Instructions,
			ImageURL:     m.ImageURL,
			Questions:    []models.Question{},
		}
		for _, q := range questions {
			if q.SectionID != m.SectionID {
				continue
			}
			q.SectionID = ""
			section.Questions = append(section.Questions, q)
		}
		sections = append(sections, section)
	}
	return sections
}

// ComputeTotals sums question counts, marks and per-question time allocations
// across the given sections. Time allocations are tracked in seconds per
// question; the estimate is reported in whole minutes, rounded up.
func ComputeTotals(sections []models.Section) Totals {
	var t Totals
	seconds := 0
	for _, s := range sections {
		t.TotalQuestions += len(s.Questions)
		for _, q := range s.Questions {
			t.TotalMarks += q.Marks
			seconds += q.TimeSeconds
		}
	}
	if seconds > 0 {
		t.EstimatedDurationMinutes = (seconds + 59) / 60
	}
	return t
}

// Flatten is the editing-session view of a nested template: section metadata
// records alongside one flat question list tagged with section ids.
func Flatten(t *models.Template) ([]models.Question, []models.SectionMeta) {
	meta := make([]models.SectionMeta, 0, len(t.Sections))
	questions := make([]models.Question, 0, t.QuestionCount())
	for _, s := range t.Sections {
		meta = append(meta, s.Meta())
		for _, q := range s.Questions {
			q.SectionID = s.SectionID
			questions = append(questions, q)
		}
	}
	return questions, meta
}
