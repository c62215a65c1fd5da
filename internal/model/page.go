package model

// DefaultPageSize applies when a list request omits the size parameter.
const DefaultPageSize = 10

// PageRequest describes the pagination and sorting parameters accepted by
// every list endpoint: page is 0-based, direction is "ASC" or "DESC".
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderClause builds the ORDER BY expression. Column names come from a
// per-endpoint whitelist, never straight from the query string; an unknown
// sort key falls back to the given clause verbatim.
func (p PageRequest) OrderClause(allowed map[string]string, fallback string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		return fallback
	}
	dir := "ASC"
	if p.Direction == "DESC" {
		dir = "DESC"
	}
	return col + " " + dir
}

// PageResponse is the list envelope: content plus paging metadata.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewPageResponse computes the derived paging fields from the total row count.
func NewPageResponse[T any](content []T, req PageRequest, total int64) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return PageResponse[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       req.Page+1 < totalPages,
		HasPrevious:   req.Page > 0,
	}
}
