package movie

import (
	"strings"

	"nettileffa/errs"
)

type SortKey string

const (
	SortYear   SortKey = "year"
	SortRating SortKey = "rating"
	SortName   SortKey = "name"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

const (
	DefaultSort   = SortName
	DefaultOrder  = OrderAsc
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0
)

var (
	ErrInvalidSort = errs.Invalid("invalid sort",
		errs.FieldError{Field: "sort", Reason: "must be one of: year rating name"})
	ErrInvalidOrder = errs.Invalid("invalid order",
		errs.FieldError{Field: "order", Reason: "must be one of: asc desc"})
	ErrInvalidLimit = errs.Invalid("invalid limit",
		errs.FieldError{Field: "limit", Reason: "must be a positive integer"})
	ErrInvalidOffset = errs.Invalid("invalid offset",
		errs.FieldError{Field: "offset", Reason: "must be a non-negative integer"})
)

// ListQuery is the filter, sort and pagination tuple of a movie listing.
// The zero value lists the first page with the default ordering.
type ListQuery struct {
	Search string
	Sort   SortKey
	Order  SortOrder
	Limit  int
	Offset int
}

// Page is one page of a listing. Total counts every matching movie,
// independent of Limit and Offset.
type Page struct {
	Total int64   `json:"total"`
	Items []Movie `json:"items"`
}

// Normalize fills defaults for unset fields and clamps Limit to MaxLimit.
// It does not fix invalid values; call Validate for that.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Order == "" {
		q.Order = DefaultOrder
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q ListQuery) Validate() error {
	switch q.Sort {
	case SortYear, SortRating, SortName:
	default:
		return ErrInvalidSort
	}

	switch q.Order {
	case OrderAsc, OrderDesc:
	default:
		return ErrInvalidOrder
	}

	if q.Limit < 1 {
		return ErrInvalidLimit
	}
	if q.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
