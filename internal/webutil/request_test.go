package webutil

import (
	"net/http/httptest"
	"testing"

	"hangulhub/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want model.PageRequest
	}{
		{
			name: "defaults",
			url:  "/api/courses",
			want: model.PageRequest{Page: 0, Size: model.DefaultPageSize, SortBy: "id", Direction: "ASC"},
		},
		{
			name: "explicit values",
			url:  "/api/courses?page=2&size=25&sortBy=title&direction=desc",
			want: model.PageRequest{Page: 2, Size: 25, SortBy: "title", Direction: "DESC"},
		},
		{
			name: "negative page falls back",
			url:  "/api/courses?page=-1&size=0",
			want: model.PageRequest{Page: 0, Size: model.DefaultPageSize, SortBy: "id", Direction: "ASC"},
		},
		{
			name: "garbage is ignored",
			url:  "/api/courses?page=abc&size=xyz&direction=sideways",
			want: model.PageRequest{Page: 0, Size: model.DefaultPageSize, SortBy: "id", Direction: "ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := ParsePageRequest(r, "id")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryUint(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/posts?userId=42", nil)
	v, ok := QueryUint(r, "userId")
	assert.True(t, ok)
	assert.EqualValues(t, 42, v)

	r = httptest.NewRequest("GET", "/api/posts", nil)
	v, ok = QueryUint(r, "userId")
	assert.False(t, ok)
	assert.EqualValues(t, 0, v)

	r = httptest.NewRequest("GET", "/api/posts?userId=-3", nil)
	_, ok = QueryUint(r, "userId")
	assert.False(t, ok)
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", model.ErrNotFound, 404},
		{"invalid input", model.ErrInvalidInput, 400},
		{"conflict", model.ErrConflict, 409},
		{"unauthorized", model.ErrUnauthorized, 401},
		{"forbidden", model.ErrForbidden, 403},
		{"wrapped app error", model.NewAppError("EMAIL_TAKEN", "taken", "email", model.ErrConflict), 409},
		{"unknown", assert.AnError, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}
