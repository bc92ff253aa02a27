package validator

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// templateSchema is the JSON Schema for the canonical template wire format.
// It guards the export path: a document that round-trips through the
// normalizer and validator must also satisfy the published schema, so
// consumers of exported files can rely on it.
const templateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "paper_info", "sections"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "paper_info": {
      "type": "object",
      "required": ["total_questions", "total_marks"],
      "properties": {
        "subject": {"type": "string"},
        "paper_number": {"type": "string"},
        "level": {"type": "string"},
        "paper_type": {"type": "string"},
        "total_questions": {"type": "integer", "minimum": 0},
        "total_marks": {"type": "integer", "minimum": 0},
        "duration_minutes": {"type": "integer", "minimum": 0}
      }
    },
    "sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["section_name", "questions"],
        "properties": {
          "section_id": {"type": "string"},
          "section_name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "instructions": {"type": "array", "items": {"type": "string"}},
          "image_url": {"type": "string"},
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "question_text", "question_type"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "question_number": {"type": "integer"},
                "question_text": {"type": "string", "minLength": 1},
                "question_type": {
                  "type": "string",
                  "enum": [
                    "multiple_choice", "true_false", "short_answer",
                    "fill_in_blank", "short_essay", "matching",
                    "ordering", "multiple_response"
                  ]
                },
                "options": {
                  "type": ["array", "null"],
                  "items": {
                    "type": "object",
                    "required": ["letter", "text"],
                    "properties": {
                      "letter": {"type": "string"},
                      "text": {"type": "string"},
                      "image_url": {"type": "string"},
                      "is_correct": {"type": "boolean"},
                      "feedback": {"type": "string"}
                    }
                  }
                },
                "column_a": {"type": "array"},
                "column_b": {"type": "array"},
                "items": {"type": "array"},
                "correct_answer": {"type": "string"},
                "marks": {"type": "integer", "minimum": 0},
                "is_free": {"type": "boolean"},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "time_seconds": {"type": "integer", "minimum": 0},
                "explanation": {"type": "string"},
                "explanation_image_url": {"type": "string"},
                "learning_objective": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledTemplateSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(templateSchema))
	if err != nil {
		panic(fmt.Sprintf("template schema does not compile: %v", err))
	}
	compiledTemplateSchema = schema
}

// CheckCanonical validates a serialized canonical template against the
// published JSON Schema.
func CheckCanonical(doc []byte) error {
	result, err := compiledTemplateSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs ValidationErrors
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Rule:    desc.Type(),
		})
	}
	return errs
}
