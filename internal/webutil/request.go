package webutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hangulhub/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody decodes the request body into dst, rejecting unknown fields.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST", "Request body is not valid JSON.", "", model.ErrInvalidInput)
	}
	return nil
}

// DecodeAndValidate decodes the body and runs struct validation on it.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		return err
	}
	if err := Validator.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return NewValidationErrorResponse(verrs)
		}
		return model.NewAppError("VALIDATION_ERROR", "Request validation failed.", "", model.ErrInvalidInput)
	}
	return nil
}

// URLParamUint reads a chi URL parameter as an unsigned integer.
func URLParamUint(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, model.NewAppError("INVALID_REQUEST", "Path parameter '"+name+"' must be a positive integer.", name, model.ErrInvalidInput)
	}
	return uint(v), nil
}

// QueryUint reads an optional unsigned integer query parameter. A missing or
// malformed value yields (0, false).
func QueryUint(r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// ParsePageRequest reads page/size/sortBy/direction query parameters,
// falling back to page 0, size 10 and the given default sort.
func ParsePageRequest(r *http.Request, defaultSortBy string) model.PageRequest {
	q := r.URL.Query()

	page := 0
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page = v
		}
	}

	size := model.DefaultPageSize
	if raw := q.Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}

	sortBy := q.Get("sortBy")
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	direction := strings.ToUpper(q.Get("direction"))
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	return model.PageRequest{Page: page, Size: size, SortBy: sortBy, Direction: direction}
}
