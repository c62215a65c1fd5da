package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"hangulhub/internal/model"

	"github.com/go-playground/validator/v10"
)

// HandleError maps err to a status code and writes the JSON error envelope.
// Unexpected errors are logged and reported as a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail}
	} else {
		slog.Error("unhandled error", "error", err)
		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    "INTERNAL_SERVER_ERROR",
				Message: "An internal server error occurred.",
			},
		}
	}

	RespondWithJSON(w, statusCode, errResp)
}

// MapErrorToStatusCode resolves the wrapped sentinel to an HTTP status.
func MapErrorToStatusCode(err error) int {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		err = appErr.Unwrap()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshaling JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Failed to encode response."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondNoContent writes an empty 204 response.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// NewValidationErrorResponse folds field errors into a single 400 AppError.
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string

	for _, err := range errs {
		fields = append(fields, err.Field())
		messages = append(messages, fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag()))
	}

	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
