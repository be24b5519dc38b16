package paging

import (
	"slices"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"pageSize" query:"pageSize"`
}

// Normalize clamps page to >=1 and resets pageSize outside [1, MaxPageSize] to DefaultPageSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}

	return p
}

// Offset returns the number of records to skip. Params must be normalized.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PastEnd reports whether the page starts beyond total records.
// It is decided from page counts, so Offset is only called for pages that exist.
func (p Params) PastEnd(total int) bool {
	return p.Page-1 >= TotalPages(total, p.PageSize)
}

// Limit returns the window size. Params must be normalized.
func (p Params) Limit() int {
	return p.PageSize
}

// Predicate reports whether a record passes a filter.
// A nil Predicate is an absent filter.
type Predicate[T any] func(T) bool

// When returns a predicate that is active only if v is set.
func When[T, V any](v *V, match func(T, V) bool) Predicate[T] {
	if v == nil {
		return nil
	}
	value := *v

	return func(rec T) bool { return match(rec, value) }
}

// Contains returns a case-insensitive substring predicate over any of the given fields,
// active only for a non-blank term.
func Contains[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	return func(rec T) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(rec)), term) {
				return true
			}
		}
		return false
	}
}

// Order is a comparison together with its direction.
type Order[T any] struct {
	Compare    func(a, b T) int
	Descending bool
}

func (o Order[T]) cmp(a, b T) int {
	if o.Descending {
		return o.Compare(b, a)
	}
	return o.Compare(a, b)
}

// Sorting is the allow-list of sort keys for one record type plus its default order.
// Keys are matched case-insensitively.
type Sorting[T any] struct {
	Keys    map[string]func(a, b T) int
	Default Order[T]
}

// Resolve picks the order for key. Unknown or empty keys silently fall back to Default.
func (s Sorting[T]) Resolve(key string, descending bool) Order[T] {
	if cmp, ok := s.Keys[strings.ToLower(strings.TrimSpace(key))]; ok {
		return Order[T]{Compare: cmp, Descending: descending}
	}

	return s.Default
}

// Query bundles the inputs of Page.
type Query[T any] struct {
	Filters    []Predicate[T]
	SortKey    string
	Descending bool
	Params
}

// Run filters, counts, sorts and windows records. It never fails: a page past the end
// yields no items with the correct total. records is not modified.
func (q Query[T]) Run(records []T, sorting Sorting[T]) ([]T, int) {
	p := q.Params.Normalize()

	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, q.Filters) {
			filtered = append(filtered, rec)
		}
	}
	total := len(filtered)

	order := sorting.Resolve(q.SortKey, q.Descending)
	if order.Compare != nil {
		slices.SortStableFunc(filtered, order.cmp)
	}

	if p.PastEnd(total) {
		return []T{}, total
	}

	offset := p.Offset()
	end := min(offset+p.Limit(), total)

	return filtered[offset:end], total
}

// Page is the positional form of Query.Run.
func Page[T any](records []T, filters []Predicate[T], sorting Sorting[T], sortKey string, descending bool, page, pageSize int) ([]T, int) {
	return Query[T]{
		Filters:    filters,
		SortKey:    sortKey,
		Descending: descending,
		Params:     Params{Page: page, PageSize: pageSize},
	}.Run(records, sorting)
}

func matchAll[T any](rec T, filters []Predicate[T]) bool {
	for _, f := range filters {
		if f != nil && !f(rec) {
			return false
		}
	}
	return true
}
