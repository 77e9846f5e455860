package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Pagination is the offset/limit window of a listing view. Total is the
// backend's last reported count and is treated as a hint, not a hard
// boundary: offsets are clamped rather than rejected.
type Pagination struct {
	Limit  int
	Offset int
	Total  int
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Offset > 0 }

// HasNext reports whether a next page exists under the last known total.
func (p Pagination) HasNext() bool { return p.Offset+p.Limit < p.Total }

// PrevOffset never drives the offset below zero.
func (p Pagination) PrevOffset() int {
	if p.Offset-p.Limit < 0 {
		return 0
	}
	return p.Offset - p.Limit
}

// NextOffset is the start of the following page.
func (p Pagination) NextOffset() int { return p.Offset + p.Limit }

// From is the 1-based index of the first displayed row, 0 on an empty set.
func (p Pagination) From() int {
	if p.Total == 0 {
		return 0
	}
	if p.Offset+1 > p.Total {
		return p.Total
	}
	return p.Offset + 1
}

// To is the 1-based index of the last displayed row: min(offset+limit, total).
func (p Pagination) To() int {
	if p.Offset+p.Limit > p.Total {
		return p.Total
	}
	return p.Offset + p.Limit
}

// pageParams reads limit/offset from the query, clamping nonsense values.
func pageParams(c *gin.Context) (limit, offset int) {
	limit = intQuery(c, "limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = intQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
