package generator

import (
	"errors"
	"strings"
)

var (
	ErrMissingInformation = errors.New("missing information")
	ErrAlreadyPending     = errors.New("generation already pending")
	ErrGenerationFailed   = errors.New("generation failed")
)

// MissingInformationError lists the context fields a generation needs.
type MissingInformationError struct {
	Fields []string
}

func (e *MissingInformationError) Error() string {
	return "missing information: " + strings.Join(e.Fields, ", ")
}

func (e *MissingInformationError) Is(target error) bool { return target == ErrMissingInformation }
