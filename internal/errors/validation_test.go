package errors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("question_text", "is required", "")

	assert.Equal(t, "question_text", err.Field)
	assert.Equal(t, "is required", err.Message)
	assert.Equal(t, "validation error on field 'question_text': is required", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("title", "is required", nil))
	assert.Equal(t, "validation failed: title is required", errs.Error())

	errs = append(errs, *NewValidationError("marks", "must be at least 1", 0))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("question_type", "must be a valid question type", "question_type", "essay_long")

	assert.Equal(t, "question_type", err.Rule)
	assert.Equal(t, "essay_long", err.Value)
}

func TestToValidationErrors(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
		Marks int    `validate:"min=1"`
	}

	err := validator.New().Struct(payload{})
	require.Error(t, err)

	errs := ToValidationErrors(err)

	require.Len(t, errs, 2)
	assert.Equal(t, "Title", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "required", errs[0].Rule)
	assert.Equal(t, "must be at least 1", errs[1].Message)
}

func TestToValidationErrors_NonValidatorError(t *testing.T) {
	errs := ToValidationErrors(assert.AnError)
	assert.Empty(t, errs)
}
