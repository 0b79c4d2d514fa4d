package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

/*

Pagination is the parsed page/limit pair of a listing request. Offset-based:
results can skip or duplicate rows if the underlying set mutates between
pages, which listing endpoints accept.

*/

type Pagination struct {
	Page  int
	Limit int
}

// PaginationEnvelope is returned alongside every page of results.
type PaginationEnvelope struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// ParsePagination reads page/limit from the query string, applying defaults
// and capping limit. Non-numeric or non-positive values are a validation
// error rather than silently clamped.
func ParsePagination(c *gin.Context) (Pagination, error) {
	p := Pagination{Page: defaultPage, Limit: defaultLimit}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, NewValidationError("page must be a positive integer")
		}
		p.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return p, NewValidationError("limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		p.Limit = limit
	}
	return p, nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Envelope computes the response metadata for a listing of total rows,
// with pages = ceil(total/limit).
func (p Pagination) Envelope(total int64) PaginationEnvelope {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PaginationEnvelope{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: pages,
	}
}
