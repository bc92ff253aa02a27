package events

import (
	"time"
)

// EventType represents different types of template lifecycle events
type EventType string

const (
	// Template events
	EventTemplateSaved    EventType = "template.saved"
	EventTemplateExported EventType = "template.exported"

	// Import events
	EventTemplateImported EventType = "template.imported"
	EventImportFailed     EventType = "import.failed"
)

// TemplateEvent is the base event structure for all template lifecycle events
type TemplateEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Template lifecycle event payloads

type TemplateSavedEvent struct {
	Kind             string `json:"kind"` // quizzes or past-papers
	ResourceID       string `json:"resource_id"`
	Title            string `json:"title"`
	TotalQuestions   int    `json:"total_questions"`
	TotalMarks       int    `json:"total_marks"`
	QuestionsDataURL string `json:"questions_data_url,omitempty"`
	SavedBy          string `json:"saved_by,omitempty"`
}

type TemplateImportedEvent struct {
	JobID          string `json:"job_id"`
	FileName       string `json:"file_name"`
	FileType       string `json:"file_type"`
	TotalQuestions int    `json:"total_questions"`
	ImportedBy     string `json:"imported_by,omitempty"`
}

type TemplateExportedEvent struct {
	Kind       string `json:"kind"`
	ResourceID string `json:"resource_id"`
	Format     string `json:"format"` // json, csv, xlsx
}

type ImportFailedEvent struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}
