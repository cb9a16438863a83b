package convert

import "errors"

// Sentinels for errors.Is checks against *Error.
var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidType = errors.New("file is not a supported document")
	ErrExtraction  = errors.New("extraction failed")
)

// Kind classifies a conversion failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidType
	KindExtraction
)

// Error is the single error type returned by Convert.
type Error struct {
	Kind Kind
	Path string
	Err  error // Underlying fault, set for KindExtraction
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return "File not found: " + e.Path
	case KindInvalidType:
		return "File is not a supported document: " + e.Path
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrExtraction.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidType:
		return e.Kind == KindInvalidType
	case ErrExtraction:
		return e.Kind == KindExtraction
	}
	return false
}

// ErrorResult is the tagged shape a failed conversion serializes to.
type ErrorResult struct {
	Error string `json:"error"`
}
