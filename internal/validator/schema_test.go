package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyprep/content-service/internal/models"
)

func TestCheckCanonical_NormalizedTemplatePasses(t *testing.T) {
	template := &models.Template{
		Title: "Schema Round Trip",
		PaperInfo: models.PaperInfo{
			Subject:        "Physics",
			TotalQuestions: 1,
			TotalMarks:     2,
		},
		Sections: []models.Section{
			{
				SectionID:   "sec_a",
				SectionName: "Section A",
				Questions: []models.Question{
					{
						ID:             "q1",
						QuestionNumber: 1,
						QuestionText:   "Pick one.",
						QuestionType:   models.MultipleChoice,
						Marks:          2,
						Options: []models.Option{
							{Letter: "A", Text: "Yes", IsCorrect: true},
							{Letter: "B", Text: "No"},
						},
					},
				},
			},
		},
	}

	data, err := json.Marshal(template)
	require.NoError(t, err)

	assert.NoError(t, CheckCanonical(data))
}

func TestCheckCanonical_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing title",
			doc:  `{"paper_info": {"total_questions": 0, "total_marks": 0}, "sections": []}`,
		},
		{
			name: "unknown question type",
			doc: `{
				"title": "T",
				"paper_info": {"total_questions": 1, "total_marks": 1},
				"sections": [{
					"section_name": "S",
					"questions": [{"id": "q1", "question_text": "Q?", "question_type": "riddle"}]
				}]
			}`,
		},
		{
			name: "totals not integers",
			doc:  `{"title": "T", "paper_info": {"total_questions": "1", "total_marks": 1}, "sections": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCanonical([]byte(tt.doc))

			require.Error(t, err)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.NotEmpty(t, verrs)
		})
	}
}
