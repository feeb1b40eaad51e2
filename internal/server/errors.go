// Package server provides the HTTP REST API for the career harvester backend.
package server

import (
	"fmt"
	"net/http"
)

// ErrMissingFile indicates the multipart request carried no resume file
type ErrMissingFile struct{}

func (e *ErrMissingFile) Error() string {
	return "no file part in the request"
}

// ErrEmptyDescription indicates the job description field was absent or blank
type ErrEmptyDescription struct{}

func (e *ErrEmptyDescription) Error() string {
	return "job description is required"
}

// ErrUnreadableResume indicates text extraction produced too little content
// to analyze
type ErrUnreadableResume struct {
	Filename string
}

func (e *ErrUnreadableResume) Error() string {
	return fmt.Sprintf("could not extract readable text from %s", e.Filename)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrExtractionFailed indicates a supported resume format that could not be
// parsed (corrupt file, parser failure)
type ErrExtractionFailed struct {
	Filename string
	Cause    error
}

func (e *ErrExtractionFailed) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *ErrExtractionFailed) Unwrap() error {
	return e.Cause
}

// ErrDelegateFailure indicates the language model delegate returned an
// unusable response
type ErrDelegateFailure struct {
	Delegate string
	Cause    error
}

func (e *ErrDelegateFailure) Error() string {
	return fmt.Sprintf("%s delegate failed: %v", e.Delegate, e.Cause)
}

func (e *ErrDelegateFailure) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrMissingFile, *ErrEmptyDescription, *ErrUnreadableResume, *ErrValidation:
		return http.StatusBadRequest
	case *ErrExtractionFailed, *ErrDelegateFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
