package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/studyprep/content-service/internal/events"
	"github.com/studyprep/content-service/internal/models"
	"github.com/studyprep/content-service/internal/repositories"
	"github.com/studyprep/content-service/internal/validator"
)

// MockImportJobRepository is a mock implementation of ImportJobRepository
type MockImportJobRepository struct {
	mock.Mock
}

func (m *MockImportJobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) Update(ctx context.Context, job *models.ImportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockImportJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportJob), args.Error(1)
}

func (m *MockImportJobRepository) List(ctx context.Context, filters repositories.ImportJobFilters) ([]*models.ImportJob, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.ImportJob), args.Get(1).(int64), args.Error(2)
}

func newTestImportService(jobs *MockImportJobRepository) (ImportExportService, *events.MockEventPublisher) {
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewImportExportService(jobs, publisher, validator.New(), testLogger())
	return svc, publisher
}

func TestImportTemplateFromFile_JSON(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, publisher := newTestImportService(jobs)

	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Update", mock.Anything, mock.MatchedBy(func(job *models.ImportJob) bool {
		return job.Status == models.ImportCompleted && job.TotalQuestions == 2
	})).Return(nil)

	data := []byte(`[
		{"question": "First?", "type": "SHORT_ANSWER", "answer": "one"},
		{"question": "Second?", "type": "SHORT_ANSWER", "answer": "two"}
	]`)

	result, err := svc.ImportTemplateFromFile(context.Background(), data, "quiz.json", "user-1")

	require.NoError(t, err)
	assert.Equal(t, models.ImportCompleted, result.Status)
	assert.Equal(t, 2, result.TotalQuestions)
	require.NotNil(t, result.Template)
	require.Len(t, result.Template.Sections, 1)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTemplateImported, published[0].Type)

	jobs.AssertExpectations(t)
}

func TestImportTemplateFromFile_YAML(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, _ := newTestImportService(jobs)

	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Update", mock.Anything, mock.Anything).Return(nil)

	data := []byte(`
title: Imported From YAML
questions:
  - question_text: What is YAML?
    question_type: short_answer
    marks: 2
`)

	result, err := svc.ImportTemplateFromFile(context.Background(), data, "quiz.yaml", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Imported From YAML", result.Template.Title)
	assert.Equal(t, 1, result.TotalQuestions)
}

func TestImportTemplateFromFile_UnsupportedExtension(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, publisher := newTestImportService(jobs)

	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Update", mock.Anything, mock.MatchedBy(func(job *models.ImportJob) bool {
		return job.Status == models.ImportFailed
	})).Return(nil)

	_, err := svc.ImportTemplateFromFile(context.Background(), []byte("a,b,c"), "quiz.csv", "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventImportFailed, published[0].Type)
}

func TestImportTemplateFromFile_MalformedJSON(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, _ := newTestImportService(jobs)

	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Update", mock.Anything, mock.MatchedBy(func(job *models.ImportJob) bool {
		return job.Status == models.ImportFailed
	})).Return(nil)

	_, err := svc.ImportTemplateFromFile(context.Background(), []byte(`{"title": `), "broken.json", "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
	jobs.AssertExpectations(t)
}

func TestImportTemplateFromFile_NestedDocumentIsGated(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, publisher := newTestImportService(jobs)

	jobs.On("Create", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Update", mock.Anything, mock.MatchedBy(func(job *models.ImportJob) bool {
		return job.Status == models.ImportValidationFailed
	})).Return(nil)

	// Nested shape with a question missing its text: rejected before
	// normalization rather than silently repaired.
	data := []byte(`{
		"title": "Broken Paper",
		"sections": [
			{"questions": [{"id": "q1", "question_type": "short_answer"}]}
		]
	}`)

	result, err := svc.ImportTemplateFromFile(context.Background(), data, "paper.json", "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "section 1, question 1: question_text is required")
	require.NotNil(t, result)
	assert.Equal(t, models.ImportValidationFailed, result.Status)
	require.Len(t, result.Errors, 1)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventImportFailed, published[0].Type)
}

func exportTemplate() *models.Template {
	return &models.Template{
		Title: "Export Fixture",
		Sections: []models.Section{
			{
				SectionName: "Section A",
				Questions: []models.Question{
					{
						ID:           "q1",
						QuestionText: "Pick the even number.",
						QuestionType: models.MultipleChoice,
						Marks:        2,
						Difficulty:   models.DifficultyEasy,
						Explanation:  "Two is even.",
						Options: []models.Option{
							{Letter: "A", Text: "2", IsCorrect: true},
							{Letter: "B", Text: "3"},
						},
					},
					{
						ID:            "q2",
						QuestionText:  "Name a prime.",
						QuestionType:  models.ShortAnswer,
						Marks:         1,
						CorrectAnswer: "7",
					},
				},
			},
		},
	}
}

func TestExportQuestionsToCSV(t *testing.T) {
	svc, _ := newTestImportService(&MockImportJobRepository{})

	data, err := svc.ExportQuestionsToCSV(exportTemplate())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 questions

	assert.Equal(t, "Section", records[0][0])
	assert.Equal(t, "Correct Answer", records[0][7])

	mc := records[1]
	assert.Equal(t, "Section A", mc[0])
	assert.Equal(t, "multiple_choice", mc[1])
	assert.Equal(t, "2", mc[3]) // option A text
	assert.Equal(t, "3", mc[4]) // option B text
	assert.Equal(t, "A", mc[7]) // correct letter
	assert.Equal(t, "2", mc[8]) // marks
	assert.Equal(t, "easy", mc[9])

	sa := records[2]
	assert.Equal(t, "short_answer", sa[1])
	assert.Equal(t, "7", sa[7])
}

func TestExportQuestionsToExcel(t *testing.T) {
	svc, _ := newTestImportService(&MockImportJobRepository{})

	data, err := svc.ExportQuestionsToExcel(exportTemplate())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Questions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Question Text", rows[0][2])
	assert.Equal(t, "Pick the even number.", rows[1][2])
}

func TestExportQuestionsToCSV_MatchingAndOrdering(t *testing.T) {
	svc, _ := newTestImportService(&MockImportJobRepository{})

	template := &models.Template{
		Title: "Special Types",
		Sections: []models.Section{{
			SectionName: "S",
			Questions: []models.Question{
				{
					ID: "q1", QuestionText: "Match.", QuestionType: models.Matching, Marks: 2,
					ColumnA: []models.MatchItem{
						{Letter: "A", Text: "France", CorrectMatch: "B"},
						{Letter: "B", Text: "Spain", CorrectMatch: "A"},
					},
					ColumnB: []models.MatchItem{
						{Letter: "A", Text: "Madrid"},
						{Letter: "B", Text: "Paris"},
					},
				},
				{
					ID: "q2", QuestionText: "Order.", QuestionType: models.Ordering, Marks: 2,
					Items: []models.OrderItem{
						{Text: "Second", CorrectPosition: 2},
						{Text: "First", CorrectPosition: 1},
					},
				},
			},
		}},
	}

	data, err := svc.ExportQuestionsToCSV(template)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "A-B;B-A", records[1][7])
	assert.Equal(t, "First;Second", records[2][7])
}

func TestGetImportJob_NotFound(t *testing.T) {
	jobs := &MockImportJobRepository{}
	svc, _ := newTestImportService(jobs)

	jobs.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetImportJob(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrImportJobNotFound)
}
