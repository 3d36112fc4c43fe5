package cdm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no managed volume matched the requested name.
	ErrNotFound = errors.New("managed volume not found")

	// ErrAmbiguousName indicates more than one managed volume has the requested name.
	ErrAmbiguousName = errors.New("managed volume name is ambiguous")

	// ErrInvalidVolume indicates the API returned a descriptor missing required fields.
	ErrInvalidVolume = errors.New("invalid managed volume descriptor")
)

// APIError is returned for any non-2xx response from the cluster.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the "message" field of the error body when present,
	// otherwise the raw body (truncated).
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// fieldError reports a missing or malformed descriptor field.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidVolume, e.field, e.reason)
}

func (e *fieldError) Is(target error) bool {
	return target == ErrInvalidVolume
}

func missingField(field string) error {
	return &fieldError{field: field, reason: "is required"}
}
