package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the error categories the HTTP boundary understands.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindAuthentication
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// DomainError standardizes application errors.
type DomainError struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Public reports whether the message and details may be shown to clients.
func (e *DomainError) Public() bool {
	return e.HTTPStatus < http.StatusInternalServerError
}

// NewValidationError carries per-field messages in details.
func NewValidationError(message string, fields map[string][]string) error {
	details := make(map[string]any, len(fields))
	for field, msgs := range fields {
		details[field] = msgs
	}
	return &DomainError{
		Kind:       KindValidation,
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func NewDuplicateError(message string) error {
	return &DomainError{Kind: KindDuplicate, Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}

func NewAuthenticationError(message string) error {
	return &DomainError{Kind: KindAuthentication, Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewNotFound(resource string) error {
	return &DomainError{
		Kind:       KindNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewStorageError(err error) error {
	return &DomainError{
		Kind:       KindStorage,
		Code:       "STORAGE_ERROR",
		Message:    "storage failure",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Kind == kind
}
