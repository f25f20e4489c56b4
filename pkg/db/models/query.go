package models

import (
	"errors"
	"math"
)

// ErrInvalidPage is returned when a page or page size is negative, or when
// the page offset does not fit in an int.
var ErrInvalidPage = errors.New("invalid page or page size")

// IssueQuery selects one page of issues.
type IssueQuery struct {
	Ordering Ordering
	Page     int // zero-indexed
	PageSize int
}

// Offset returns the number of rows to skip.
func (q IssueQuery) Offset() int {
	return q.Page * q.PageSize
}

// Limit returns the maximum number of rows to return.
func (q IssueQuery) Limit() int {
	return q.PageSize
}

// Validate validates the query.
func (q IssueQuery) Validate() error {
	if q.Page < 0 || q.PageSize < 0 {
		return ErrInvalidPage
	}
	if q.PageSize > 0 && q.Page > math.MaxInt/q.PageSize {
		return ErrInvalidPage
	}
	_, err := q.Ordering.OrderColumn()
	return err
}
