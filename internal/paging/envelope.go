package paging

// Envelope is the paged response shape shared by every record type.
type Envelope[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// NewEnvelope builds an envelope from a query result. total must come from the same
// query that produced items. Zero matches give TotalPages == 0.
func NewEnvelope[T any](items []T, total int, p Params) Envelope[T] {
	p = p.Normalize()
	if items == nil {
		items = []T{}
	}

	return Envelope[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: total,
		TotalPages: TotalPages(total, p.PageSize),
	}
}

// TotalPages returns ceil(total/pageSize). pageSize below 1 is treated as DefaultPageSize.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}

// HasNext reports whether a page follows the current one.
func (e Envelope[T]) HasNext() bool {
	return e.Page < e.TotalPages
}

// HasPrevious reports whether a page precedes the current one.
func (e Envelope[T]) HasPrevious() bool {
	return e.Page > 1
}

// MapEnvelope converts items keeping the paging metadata.
func MapEnvelope[From, To any](e Envelope[From], convert func(From) To) Envelope[To] {
	items := make([]To, len(e.Items))
	for i := range e.Items {
		items[i] = convert(e.Items[i])
	}

	return Envelope[To]{
		Items:      items,
		Page:       e.Page,
		PageSize:   e.PageSize,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages,
	}
}
