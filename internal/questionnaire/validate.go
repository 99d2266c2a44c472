package questionnaire

import (
	"fmt"
	"slices"
	"strings"

	"web3stack-api/internal/stack"
)

// FieldError describes one rejected answer field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

// Validate checks that answers only use known option values. The single
// choice fields are required; use cases and preferences may be empty but
// must not repeat.
func Validate(a stack.Answers) error {
	var fields []FieldError
	fields = checkOne(fields, "projectType", a.ProjectType, stack.ProjectTypes)
	fields = checkOne(fields, "experienceLevel", a.ExperienceLevel, stack.ExperienceLevels)
	fields = checkOne(fields, "blockchain", a.Blockchain, stack.Blockchains)
	fields = checkSet(fields, "useCases", a.UseCases, stack.UseCases)
	fields = checkSet(fields, "preferences", a.Preferences, stack.Preferences)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkOne[T ~string](out []FieldError, field string, v T, allowed []T) []FieldError {
	switch {
	case v == "":
		return append(out, FieldError{Field: field, Message: "is required"})
	case !slices.Contains(allowed, v):
		return append(out, FieldError{Field: field, Message: fmt.Sprintf("unknown value %q", v)})
	}
	return out
}

func checkSet[T ~string](out []FieldError, field string, values []T, allowed []T) []FieldError {
	seen := make(map[T]bool, len(values))
	for i, v := range values {
		name := fmt.Sprintf("%s[%d]", field, i)
		switch {
		case !slices.Contains(allowed, v):
			out = append(out, FieldError{Field: name, Message: fmt.Sprintf("unknown value %q", v)})
		case seen[v]:
			out = append(out, FieldError{Field: name, Message: fmt.Sprintf("duplicate value %q", v)})
		}
		seen[v] = true
	}
	return out
}
