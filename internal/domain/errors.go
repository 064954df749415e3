package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse is returned when the page could not be fetched or answered non-2xx
	ErrInvalidResponse = errors.New("invalid response from recipe page")

	// ErrInvalidEncoding is returned when the page body is not valid UTF-8
	ErrInvalidEncoding = errors.New("recipe page is not valid UTF-8")

	// ErrMissingRequiredData is returned when name, ingredients or instructions are empty after extraction
	ErrMissingRequiredData = errors.New("missing required recipe data")

	// ErrParseFailure is the catch-all for anything else that breaks an import
	ErrParseFailure = errors.New("failed to parse recipe")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ImportErrorKind tags an ImportError.
type ImportErrorKind int

const (
	KindInvalidResponse ImportErrorKind = iota
	KindInvalidEncoding
	KindMissingRequiredData
	KindParseFailure
)

func (k ImportErrorKind) String() string {
	switch k {
	case KindInvalidResponse:
		return "invalidResponse"
	case KindInvalidEncoding:
		return "invalidEncoding"
	case KindMissingRequiredData:
		return "missingRequiredData"
	default:
		return "parseFailure"
	}
}

// Mandatory fields named by a missingRequiredData error
const (
	FieldName         = "name"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
)

// ImportError is the terminal failure of one import attempt. It is never retried.
type ImportError struct {
	Kind  ImportErrorKind
	Field string // set for KindMissingRequiredData
	Err   error  // underlying cause, may be nil
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case KindMissingRequiredData:
		return fmt.Sprintf("%s: %s", ErrMissingRequiredData, e.Field)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
		}
		return e.sentinel().Error()
	}
}

// Unwrap exposes the underlying cause.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's kind.
func (e *ImportError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ImportError) sentinel() error {
	switch e.Kind {
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindInvalidEncoding:
		return ErrInvalidEncoding
	case KindMissingRequiredData:
		return ErrMissingRequiredData
	default:
		return ErrParseFailure
	}
}

// NewInvalidResponse wraps a transport failure or a non-2xx status.
func NewInvalidResponse(err error) *ImportError {
	return &ImportError{Kind: KindInvalidResponse, Err: err}
}

// NewInvalidEncoding reports a body that could not be decoded.
func NewInvalidEncoding(err error) *ImportError {
	return &ImportError{Kind: KindInvalidEncoding, Err: err}
}

// NewMissingRequiredData names the first mandatory field left empty.
func NewMissingRequiredData(field string) *ImportError {
	return &ImportError{Kind: KindMissingRequiredData, Field: field}
}

// NewParseFailure wraps an unexpected failure.
func NewParseFailure(err error) *ImportError {
	return &ImportError{Kind: KindParseFailure, Err: err}
}
