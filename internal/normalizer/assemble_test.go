package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyprep/content-service/internal/models"
)

func TestAssembleSections(t *testing.T) {
	meta := []models.SectionMeta{
		{SectionID: "sec_a", SectionName: "Section A"},
		{SectionID: "sec_b", SectionName: "Section B"},
		{SectionID: "sec_empty", SectionName: "Reserved"},
	}
	questions := []models.Question{
		{ID: "q1", QuestionText: "First", SectionID: "sec_a", Marks: 2},
		{ID: "q2", QuestionText: "Second", SectionID: "sec_b", Marks: 3},
		{ID: "q3", QuestionText: "Third", SectionID: "sec_a", Marks: 1},
	}

	sections := AssembleSections(questions, meta)

	require.Len(t, sections, 3)
	assert.Equal(t, []string{"q1", "q3"}, questionIDs(sections[0]))
	assert.Equal(t, []string{"q2"}, questionIDs(sections[1]))

	// A section with no matching questions keeps an empty array.
	require.NotNil(t, sections[2].Questions)
	assert.Empty(t, sections[2].Questions)

	// The section_id tag is editing-session bookkeeping and must not leak
	// into the persisted shape.
	for _, s := range sections {
		for _, q := range s.Questions {
			assert.Empty(t, q.SectionID)
		}
	}
}

func questionIDs(s models.Section) []string {
	ids := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestAssembleSections_PreservesMetadata(t *testing.T) {
	meta := []models.SectionMeta{{
		SectionID:    "sec_a",
		SectionName:  "Section A",
		Description:  "Answer all questions",
		Instructions: []string{"Use a pencil", "Show your working"},
		ImageURL:     "https://cdn.example.com/diagram.png",
	}}

	sections := AssembleSections(nil, meta)

	require.Len(t, sections, 1)
	assert.Equal(t, "Answer all questions", sections[0].Description)
	assert.Equal(t, []string{"Use a pencil", "Show your working"}, sections[0].Instructions)
	assert.Equal(t, "https://cdn.example.com/diagram.png", sections[0].ImageURL)
}

func TestComputeTotals(t *testing.T) {
	sections := []models.Section{
		{Questions: []models.Question{
			{Marks: 2, TimeSeconds: 90},
			{Marks: 3, TimeSeconds: 45},
		}},
		{Questions: []models.Question{
			{Marks: 5},
		}},
	}

	totals := ComputeTotals(sections)

	assert.Equal(t, 3, totals.TotalQuestions)
	assert.Equal(t, 10, totals.TotalMarks)
	// 135 seconds rounds up to 3 minutes.
	assert.Equal(t, 3, totals.EstimatedDurationMinutes)
}

func TestComputeTotals_NoTimeAllocations(t *testing.T) {
	totals := ComputeTotals([]models.Section{
		{Questions: []models.Question{{Marks: 1}}},
	})

	assert.Equal(t, 1, totals.TotalQuestions)
	assert.Equal(t, 0, totals.EstimatedDurationMinutes)
}

func TestFlattenAssembleRoundTrip(t *testing.T) {
	template := &models.Template{
		Title: "Round Trip",
		Sections: []models.Section{
			{
				SectionID:   "sec_a",
				SectionName: "Section A",
				Questions: []models.Question{
					{ID: "q1", QuestionText: "One", Marks: 1},
					{ID: "q2", QuestionText: "Two", Marks: 2},
				},
			},
			{
				SectionID:   "sec_b",
				SectionName: "Section B",
				Questions:   []models.Question{{ID: "q3", QuestionText: "Three", Marks: 3}},
			},
		},
	}

	questions, meta := Flatten(template)

	require.Len(t, questions, 3)
	assert.Equal(t, "sec_a", questions[0].SectionID)
	assert.Equal(t, "sec_b", questions[2].SectionID)

	reassembled := AssembleSections(questions, meta)
	assert.Equal(t, template.Sections, reassembled)
}

func TestFlattenAssemble_IDLessSectionsStayDistinct(t *testing.T) {
	// Sections imported without ids get generated ones, so flattening and
	// reassembling must keep each question in its own section instead of
	// fanning it out across every id-less section.
	doc := parseJSON(t, `{
		"sections": [
			{"questions": [{"question_text": "One?"}]},
			{"questions": [{"question_text": "Two?"}]}
		]
	}`)

	template := Normalize(doc)
	questions, meta := Flatten(template)
	sections := AssembleSections(questions, meta)

	require.Len(t, sections, 2)
	require.Len(t, sections[0].Questions, 1)
	require.Len(t, sections[1].Questions, 1)
	assert.Equal(t, "One?", sections[0].Questions[0].QuestionText)
	assert.Equal(t, "Two?", sections[1].Questions[0].QuestionText)
}
