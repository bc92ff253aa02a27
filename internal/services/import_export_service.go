package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/studyprep/content-service/internal/events"
	"github.com/studyprep/content-service/internal/models"
	"github.com/studyprep/content-service/internal/normalizer"
	"github.com/studyprep/content-service/internal/repositories"
	"github.com/studyprep/content-service/internal/validator"
)

// ImportExportService handles template file import and question export.
type ImportExportService interface {
	// Import operations
	ImportTemplateFromFile(ctx context.Context, data []byte, filename, userID string) (*ImportResult, error)

	// Export operations
	ExportQuestionsToCSV(template *models.Template) ([]byte, error)
	ExportQuestionsToExcel(template *models.Template) ([]byte, error)

	// Job management
	GetImportJob(ctx context.Context, jobID string) (*models.ImportJob, error)
	ListImportJobs(ctx context.Context, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error)
}

type importExportService struct {
	jobs      repositories.ImportJobRepository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewImportExportService(
	jobs repositories.ImportJobRepository,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
) ImportExportService {
	return &importExportService{
		jobs:      jobs,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

// ===== IMPORT OPERATIONS =====

type ImportResult struct {
	JobID          string                         `json:"job_id"`
	Template       *models.Template               `json:"template,omitempty"`
	TotalQuestions int                            `json:"total_questions"`
	Errors         []models.ImportValidationError `json:"errors,omitempty"`
	Status         models.ImportJobStatus         `json:"status"`
}

// ImportTemplateFromFile parses a user-picked template file and normalizes
// it into the canonical shape. Documents that already carry the nested
// sections structure are structurally validated before normalization; legacy
// flat shapes go straight through the normalizer, which never fails.
func (s *importExportService) ImportTemplateFromFile(ctx context.Context, data []byte, filename, userID string) (*ImportResult, error) {
	s.logger.Info("Starting template import", "filename", filename, "user_id", userID)

	ext := strings.ToLower(filepath.Ext(filename))
	fileType := strings.TrimPrefix(ext, ".")

	now := time.Now()
	job := &models.ImportJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		FileName:  filename,
		FileType:  fileType,
		FileSize:  int64(len(data)),
		Status:    models.ImportProcessing,
		StartedAt: &now,
		CreatedAt: now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	doc, err := parseTemplateFile(data, ext)
	if err != nil {
		s.failJob(ctx, job, models.ImportFailed, err)
		return nil, err
	}

	// Candidate nested templates must pass the structural gate before they
	// are accepted for preview; legacy shapes have nothing to gate.
	if root, ok := doc.(map[string]any); ok {
		if _, nested := root["sections"]; nested {
			if err := s.validator.Template().ValidateDocument(doc); err != nil {
				s.failJob(ctx, job, models.ImportValidationFailed, err)
				return &ImportResult{
					JobID:  job.ID,
					Status: models.ImportValidationFailed,
					Errors: []models.ImportValidationError{{Message: err.Error()}},
				}, err
			}
		}
	}

	template := normalizer.Normalize(doc)
	total := template.QuestionCount()

	completed := time.Now()
	job.Status = models.ImportCompleted
	job.Progress = 100
	job.TotalQuestions = total
	job.SuccessCount = total
	job.CompletedAt = &completed
	if summary, err := json.Marshal(models.ImportSummary{
		TotalQuestions: total,
		SuccessCount:   total,
		ProcessingTime: completed.Sub(now),
	}); err == nil {
		job.Summary = summary
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Warn("failed to update import job", "job_id", job.ID, "error", err)
	}

	s.publishEvent(ctx, events.EventTemplateImported, events.TemplateImportedEvent{
		JobID:          job.ID,
		FileName:       filename,
		FileType:       fileType,
		TotalQuestions: total,
		ImportedBy:     userID,
	})

	s.logger.Info("Template import completed",
		"job_id", job.ID,
		"filename", filename,
		"total_questions", total)

	return &ImportResult{
		JobID:          job.ID,
		Template:       template,
		TotalQuestions: total,
		Status:         models.ImportCompleted,
	}, nil
}

func parseTemplateFile(data []byte, ext string) (any, error) {
	var doc any
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
	return doc, nil
}

func (s *importExportService) failJob(ctx context.Context, job *models.ImportJob, status models.ImportJobStatus, cause error) {
	completed := time.Now()
	job.Status = status
	job.ErrorCount = 1
	job.CompletedAt = &completed
	if errs, err := json.Marshal([]models.ImportValidationError{{Message: cause.Error()}}); err == nil {
		job.Errors = errs
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Warn("failed to update import job", "job_id", job.ID, "error", err)
	}

	s.publishEvent(ctx, events.EventImportFailed, events.ImportFailedEvent{
		JobID:    job.ID,
		FileName: job.FileName,
		Reason:   cause.Error(),
	})
}

// ===== EXPORT OPERATIONS =====

var exportHeaders = []string{
	"Section", "Question Type", "Question Text", "Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Marks", "Difficulty", "Explanation",
}

func (s *importExportService) ExportQuestionsToCSV(template *models.Template) ([]byte, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, section := range template.Sections {
		for _, question := range section.Questions {
			if err := writer.Write(questionToExportRow(section.SectionName, &question)); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(buf.String()), nil
}

func (s *importExportService) ExportQuestionsToExcel(template *models.Template) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 0
	for _, section := range template.Sections {
		for _, question := range section.Questions {
			row := questionToExportRow(section.SectionName, &question)
			for colIndex, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
				f.SetCellValue(sheetName, cell, value)
			}
			rowIndex++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func questionToExportRow(sectionName string, question *models.Question) []string {
	row := make([]string, len(exportHeaders))

	row[0] = sectionName
	row[1] = string(question.QuestionType)
	row[2] = question.QuestionText

	switch {
	case question.QuestionType.ChoiceBased():
		var correctLetters []string
		for i, option := range question.Options {
			if i < 4 { // Option A through D
				row[3+i] = option.Text
			}
			if option.IsCorrect {
				correctLetters = append(correctLetters, option.Letter)
			}
		}
		row[7] = strings.Join(correctLetters, ",")
	case question.QuestionType == models.Matching:
		var pairs []string
		for _, item := range question.ColumnA {
			pairs = append(pairs, fmt.Sprintf("%s-%s", item.Letter, item.CorrectMatch))
		}
		row[7] = strings.Join(pairs, ";")
	case question.QuestionType == models.Ordering:
		ordered := make([]string, len(question.Items))
		for _, item := range question.Items {
			if item.CorrectPosition >= 1 && item.CorrectPosition <= len(ordered) {
				ordered[item.CorrectPosition-1] = item.Text
			}
		}
		row[7] = strings.Join(ordered, ";")
	default:
		row[7] = question.CorrectAnswer
	}

	row[8] = strconv.Itoa(question.Marks)
	row[9] = string(question.Difficulty)
	row[10] = question.Explanation

	return row
}

// ===== JOB MANAGEMENT =====

func (s *importExportService) GetImportJob(ctx context.Context, jobID string) (*models.ImportJob, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrImportJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *importExportService) ListImportJobs(ctx context.Context, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	return s.jobs.List(ctx, filters)
}

func (s *importExportService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	event := &events.TemplateEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	if err := s.publisher.PublishTemplateEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
