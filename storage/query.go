package storage

// Pagination defaults for the list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 200
)

// ListQuery is the structured form of the list endpoint's query parameters.
// MinPrice and MaxPrice are pointers so an absent bound is distinguishable
// from zero; non-numeric bounds are dropped at parse time and never reach
// this struct.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Magazine string
	MinPrice *float64
	MaxPrice *float64
}

// Skip is the number of documents to pass over for the requested page.
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// AmountOnly reports whether an amount range is the sole active filter.
// In that mode pagination is disabled: every match is returned on a single
// page and the amount sum is computed from the returned set. A search term
// or magazine filter alongside the range falls back to normal paging.
func (q ListQuery) AmountOnly() bool {
	return q.Search == "" && q.Magazine == "" && (q.MinPrice != nil || q.MaxPrice != nil)
}

// Paginated reports whether skip/limit should be applied to retrieval.
func (q ListQuery) Paginated() bool {
	return !q.AmountOnly()
}
