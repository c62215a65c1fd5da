package model

import "errors"

// Sentinel errors shared by every service. webutil.MapErrorToStatusCode
// translates them to HTTP status codes.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("resource conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// AppError carries a machine-readable code and a user-facing message on top
// of one of the sentinel errors above.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse is the JSON body returned for every failed request.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
