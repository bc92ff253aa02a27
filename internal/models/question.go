package models

type QuestionType string

const (
	MultipleChoice   QuestionType = "multiple_choice"
	TrueFalse        QuestionType = "true_false"
	ShortAnswer      QuestionType = "short_answer"
	FillInBlank      QuestionType = "fill_in_blank"
	ShortEssay       QuestionType = "short_essay"
	Matching         QuestionType = "matching"
	Ordering         QuestionType = "ordering"
	MultipleResponse QuestionType = "multiple_response"
)

// AllQuestionTypes is the closed set of recognized type tags.
var AllQuestionTypes = []QuestionType{
	MultipleChoice,
	TrueFalse,
	ShortAnswer,
	FillInBlank,
	ShortEssay,
	Matching,
	Ordering,
	MultipleResponse,
}

func (t QuestionType) Valid() bool {
	for _, known := range AllQuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ChoiceBased reports whether the type carries an options array.
func (t QuestionType) ChoiceBased() bool {
	return t == MultipleChoice || t == TrueFalse || t == MultipleResponse
}

// FreeText reports whether the type is answered with a single expected string.
func (t QuestionType) FreeText() bool {
	return t == ShortAnswer || t == FillInBlank || t == ShortEssay
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Option is one selectable choice within a choice-based question.
type Option struct {
	Letter    string `json:"letter"`
	Text      string `json:"text"`
	ImageURL  string `json:"image_url,omitempty"`
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback,omitempty"`
}

// MatchItem is one labeled entry in a matching question column. CorrectMatch
// is set on Column A items only and must reference a Column B item letter.
type MatchItem struct {
	Letter       string `json:"item_letter"`
	Text         string `json:"item_text"`
	ImageURL     string `json:"image_url,omitempty"`
	CorrectMatch string `json:"correct_match,omitempty"`
}

// OrderItem is one entry of an ordering question. CorrectPosition values
// across a question's items must form a contiguous 1..N sequence.
type OrderItem struct {
	Text            string `json:"item_text"`
	CorrectPosition int    `json:"correct_position"`
}

// Question is a single assessable item. The envelope is shared by all eight
// types; Options, ColumnA/ColumnB, Items and CorrectAnswer are populated
// according to QuestionType and cross-checked by the validator.
type Question struct {
	ID             string       `json:"id" validate:"required"`
	QuestionNumber int          `json:"question_number,omitempty"`
	QuestionText   string       `json:"question_text" validate:"required"`
	QuestionType   QuestionType `json:"question_type" validate:"required,question_type"`

	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`

	Options []Option    `json:"options"`
	ColumnA []MatchItem `json:"column_a,omitempty"`
	ColumnB []MatchItem `json:"column_b,omitempty"`
	Items   []OrderItem `json:"items,omitempty"`

	// Expected answer for free-text types; also carries the promoted correct
	// option text for fill_in_blank sources that only supplied options.
	CorrectAnswer string `json:"correct_answer,omitempty"`

	Marks             int             `json:"marks"`
	IsFree            *bool           `json:"is_free,omitempty"`
	Difficulty        DifficultyLevel `json:"difficulty,omitempty" validate:"omitempty,difficulty_level"`
	TimeSeconds       int             `json:"time_seconds,omitempty"`
	Explanation       string          `json:"explanation,omitempty"`
	ExplanationImage  string          `json:"explanation_image_url,omitempty"`
	LearningObjective string          `json:"learning_objective,omitempty"`

	// Client-side bookkeeping for the flat editing view; stripped before a
	// section document is persisted.
	SectionID string `json:"section_id,omitempty"`
}
