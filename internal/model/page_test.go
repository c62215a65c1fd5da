package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_OrderClause(t *testing.T) {
	allowed := map[string]string{"bookNumber": "book_number", "title": "title"}

	tests := []struct {
		name string
		req  PageRequest
		want string
	}{
		{"whitelisted ascending", PageRequest{SortBy: "bookNumber", Direction: "ASC"}, "book_number ASC"},
		{"whitelisted descending", PageRequest{SortBy: "title", Direction: "DESC"}, "title DESC"},
		{"unknown key uses fallback verbatim", PageRequest{SortBy: "password", Direction: "DESC"}, "book_number ASC"},
		{"empty key uses fallback", PageRequest{}, "book_number ASC"},
		{"bogus direction defaults to ASC", PageRequest{SortBy: "title", Direction: "sideways"}, "title ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.OrderClause(allowed, "book_number ASC"))
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		page := NewPageResponse([]int{1, 2, 3}, PageRequest{Page: 1, Size: 3}, 10)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.Size)
		assert.EqualValues(t, 10, page.TotalElements)
		assert.Equal(t, 4, page.TotalPages)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrevious)
	})

	t.Run("last page", func(t *testing.T) {
		page := NewPageResponse([]int{1}, PageRequest{Page: 3, Size: 3}, 10)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrevious)
	})

	t.Run("empty result keeps content non-nil", func(t *testing.T) {
		page := NewPageResponse[int](nil, PageRequest{Page: 0, Size: 10}, 0)
		assert.NotNil(t, page.Content)
		assert.Empty(t, page.Content)
		assert.Equal(t, 0, page.TotalPages)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
	})
}
