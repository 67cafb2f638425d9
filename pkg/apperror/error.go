package apperror

import "net/http"

// Kind classifies who is at fault for a failed request.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindUpstream      Kind = "upstream"
	KindUnexpected    Kind = "unexpected"
	KindNotFound      Kind = "not_found"
)

// ServerErrorMessage is the only text callers ever see for unexpected failures.
const ServerErrorMessage = "server_error"

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, err)
}

func Configuration(message string) *AppError {
	return New(http.StatusInternalServerError, KindConfiguration, message, nil)
}

func Upstream(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindUpstream, message, err)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindUnexpected, ServerErrorMessage, err)
}
