package application

import "errors"

// ErrorKind classifies failures so transports can map them to responses.
type ErrorKind string

const (
	KindMissingField          ErrorKind = "MissingField"
	KindInvalidFormat         ErrorKind = "InvalidFormat"
	KindBusinessRuleViolation ErrorKind = "BusinessRuleViolation"
	KindNotFound              ErrorKind = "NotFound"
	KindAuthenticationFailure ErrorKind = "AuthenticationFailure"
	KindForbidden             ErrorKind = "Forbidden"
	KindConflict              ErrorKind = "Conflict"
	KindInternal              ErrorKind = "Internal"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Msg  string `json:"msg"`
	Path string `json:"path"`
}

// AppError is the structured error returned by application handlers.
// Sentinels are declared as *AppError values and compared with errors.Is.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *AppError) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// NewValidationError builds an InvalidFormat error carrying every field failure.
// The first failure becomes the error message.
func NewValidationError(fields []FieldError) *AppError {
	err := &AppError{Kind: KindInvalidFormat, Fields: fields}
	if len(fields) > 0 {
		err.Message = fields[0].Msg
	}
	return err
}

// KindOf reports the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
