package models

// PaperInfo is the top-level metadata block of a template. TotalQuestions and
// TotalMarks are recomputed from the sections on load and on validation;
// supplied values are never trusted.
type PaperInfo struct {
	Subject         string `json:"subject,omitempty"`
	PaperNumber     string `json:"paper_number,omitempty"`
	Level           string `json:"level,omitempty"`
	PaperType       string `json:"paper_type,omitempty"`
	TotalQuestions  int    `json:"total_questions"`
	TotalMarks      int    `json:"total_marks"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// Section is a named, ordered grouping of questions within a template.
type Section struct {
	SectionID    string     `json:"section_id,omitempty"`
	SectionName  string     `json:"section_name"`
	Description  string     `json:"description,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	Questions    []Question `json:"questions"`
}

// SectionMeta is a section record without embedded questions, as held by an
// editing session alongside its flat question list.
type SectionMeta struct {
	SectionID    string   `json:"section_id"`
	SectionName  string   `json:"section_name"`
	Description  string   `json:"description,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// Template is a full quiz or past-paper document: metadata plus ordered
// sections. One template maps to one JSON document on the remote content API,
// replaced wholesale on save.
type Template struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	PaperInfo   PaperInfo `json:"paper_info"`
	Sections    []Section `json:"sections"`
}

// QuestionCount returns the number of questions across all sections.
func (t *Template) QuestionCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Questions)
	}
	return n
}

// Meta returns the section's metadata record without its questions.
func (s *Section) Meta() SectionMeta {
	return SectionMeta{
		SectionID:    s.SectionID,
		SectionName:  s.SectionName,
		Description:  s.Description,
		Instructions: s.Instructions,
		ImageURL:     s.ImageURL,
	}
}
