package listquery

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Spec describes one list page: what it selects, which request parameters
// may filter it and how it may be sorted.
type Spec struct {
	Table   string
	Columns []string
	// Joins are complete join clauses, e.g. "LEFT JOIN companies c ON c.id = j.company_id".
	Joins   []string
	Fields  []FilterField
	GroupBy []string

	// Sorts maps a public sort key to its ORDER BY expression.
	Sorts       map[string]string
	DefaultSort string
}

// Request holds the parsed, whitelisted parameters of a list page load.
type Request struct {
	Filters  map[string]string
	Sort     string
	Page     int
	PageSize int
}

// ParseRequest keeps only the parameters spec declares. Unknown filter
// names and sort keys are dropped here so nothing downstream sees them.
func ParseRequest(values url.Values, spec Spec) Request {
	req := Request{
		Filters:  make(map[string]string),
		Page:     1,
		PageSize: DefaultPageSize,
	}

	for _, f := range spec.Fields {
		if values.Has(f.Name) {
			req.Filters[f.Name] = values.Get(f.Name)
		}
	}

	if _, ok := spec.Sorts[values.Get("sort")]; ok {
		req.Sort = values.Get("sort")
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		req.Page = page
	}
	if size, err := strconv.Atoi(values.Get("page_size")); err == nil {
		req.PageSize = size
	}
	req.PageSize = normalizePageSize(req.PageSize)
	return req
}

func normalizePageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
