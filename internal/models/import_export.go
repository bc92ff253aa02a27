package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportJobStatus string

const (
	ImportPending          ImportJobStatus = "pending"
	ImportProcessing       ImportJobStatus = "processing"
	ImportCompleted        ImportJobStatus = "completed"
	ImportFailed           ImportJobStatus = "failed"
	ImportValidationFailed ImportJobStatus = "validation_failed"
)

// ImportJob records one template file import. Content itself lives on the
// remote API; only the job bookkeeping is stored locally.
type ImportJob struct {
	ID      string  `json:"id" gorm:"primaryKey;size:36"`       // UUID
	QuizID  *string `json:"quiz_id" gorm:"index;size:64"`       // null for past-paper import
	PaperID *string `json:"past_paper_id" gorm:"index;size:64"` // null for quiz import
	UserID  string  `json:"user_id" gorm:"not null;index;size:255"`

	// File info
	FileName string `json:"file_name" gorm:"not null;size:255"`
	FileType string `json:"file_type" gorm:"not null;size:20"` // json, yaml
	FileSize int64  `json:"file_size" gorm:"not null"`

	// Job status
	Status   ImportJobStatus `json:"status" gorm:"default:pending;index"`
	Progress int             `json:"progress" gorm:"default:0"` // 0-100

	// Processing info
	TotalQuestions int `json:"total_questions"`
	SuccessCount   int `json:"success_count"`
	ErrorCount     int `json:"error_count"`

	// Results
	Errors  datatypes.JSON `json:"errors" gorm:"type:jsonb"` // []ImportValidationError
	Summary datatypes.JSON `json:"summary" gorm:"type:jsonb"`

	// Timestamps
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

// ImportValidationError locates one rejected spot in an imported document.
// Section and Question are 1-based; zero means the error is document-level.
type ImportValidationError struct {
	Section  int    `json:"section"`
	Question int    `json:"question"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Value    string `json:"value"`
}

type ImportSummary struct {
	TotalQuestions int                     `json:"total_questions"`
	SuccessCount   int                     `json:"success_count"`
	ErrorCount     int                     `json:"error_count"`
	Errors         []ImportValidationError `json:"errors"`
	ProcessingTime time.Duration           `json:"processing_time"`
}
