// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
	// ErrorCode is the machine-readable code clients of the order API branch on.
	ErrorCode string `json:"errorCode,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithErrorCode returns a copy carrying the given error code.
func (p ProblemDetail) WithErrorCode(code string) ProblemDetail {
	p.ErrorCode = code
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Problem types as URI references.
const (
	TypeNotFound   = "/problems/not-found"
	TypeBadRequest = "/problems/bad-request"
	TypeInternal   = "/problems/internal-error"
)

// Error codes carried in ErrorCode.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = ProblemDetail{
		Type:      TypeNotFound,
		Title:     "Resource Not Found",
		Status:    http.StatusNotFound,
		ErrorCode: CodeNotFound,
	}

	// ErrBadRequest indicates the request was malformed or violated an invariant.
	ErrBadRequest = ProblemDetail{
		Type:      TypeBadRequest,
		Title:     "Bad Request",
		Status:    http.StatusBadRequest,
		ErrorCode: CodeInvalidInput,
	}

	// ErrInternal indicates an unexpected server or downstream error.
	ErrInternal = ProblemDetail{
		Type:      TypeInternal,
		Title:     "Internal Server Error",
		Status:    http.StatusInternalServerError,
		ErrorCode: CodeInternal,
	}
)

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any, detail string) ProblemDetail {
	if detail == "" {
		detail = fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)
	}
	return ErrNotFound.
		WithDetail(detail).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
