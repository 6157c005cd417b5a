package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind - стабильный тег ошибки, по которому транспорт выбирает статус
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_error"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindUnknown      Kind = "unknown"
)

type AppError struct {
	Kind    Kind                   `json:"kind"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy so that package-level errors stay immutable.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is matches on Kind and Code, so copies made by WithDetails still match
// their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NotFound - ошибка отсутствующей сущности, с указанием типа и идентификатора
func NotFound(entity string, id fmt.Stringer) *AppError {
	return New(
		KindNotFound,
		CodeNotFound,
		fmt.Sprintf("%s with id '%s' was not found", entity, id),
	).WithDetails(map[string]interface{}{
		"entity": entity,
		"id":     id.String(),
	})
}

// Validation - ошибка входных данных
func Validation(message string) *AppError {
	return New(KindValidation, CodeValidation, message)
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns KindUnknown for anything that is not an *AppError.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// Internal - непредвиденная ошибка; текст причины клиенту не отдаётся
func Internal() *AppError {
	return ErrInternalServer.WithDetails(nil)
}
