package resume

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSkillLevel = errors.New("invalid skill level")
	ErrDuplicateID       = errors.New("duplicate entry id")
)

// FieldError is a single schema violation at a JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in an imported record.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid resume record:")
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, " %s: %s;", fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}
