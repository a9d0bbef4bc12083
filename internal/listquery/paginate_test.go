package listquery_test

import (
	"net/url"
	"testing"

	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		size      int
		requested int
		want      listquery.Page
	}{
		{"empty", 0, 10, 1, listquery.Page{Number: 1, TotalPages: 0}},
		{"empty past end", 0, 10, 5, listquery.Page{Number: 1, TotalPages: 0}},
		{"exact", 20, 10, 2, listquery.Page{Number: 2, TotalPages: 2}},
		{"partial last page", 23, 10, 3, listquery.Page{Number: 3, TotalPages: 3}},
		{"past end is clamped", 23, 10, 4, listquery.Page{Number: 3, TotalPages: 3}},
		{"below one", 23, 10, 0, listquery.Page{Number: 1, TotalPages: 3}},
		{"negative", 23, 10, -2, listquery.Page{Number: 1, TotalPages: 3}},
		{"single record", 1, 50, 1, listquery.Page{Number: 1, TotalPages: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listquery.Paginate(tt.total, tt.size, tt.requested))
		})
	}
}

func TestPaginate_CeilProperty(t *testing.T) {
	for size := 1; size <= 12; size++ {
		for total := int64(0); total <= 60; total++ {
			got := listquery.Paginate(total, size, 1).TotalPages

			want := int(total / int64(size))
			if total%int64(size) != 0 {
				want++
			}
			assert.Equal(t, want, got, "total=%d size=%d", total, size)
			assert.Equal(t, total == 0, got == 0, "total=%d size=%d", total, size)
		}
	}
}

func TestParseRequest_Whitelists(t *testing.T) {
	values := url.Values{
		"status":    {"active"},
		"category":  {"0"},
		"employer":  {"3"},
		"sort":      {"title"},
		"page":      {"2"},
		"page_size": {"500"},
	}

	req := listquery.ParseRequest(values, jobSpec)

	assert.Equal(t, map[string]string{"status": "active", "category": "0"}, req.Filters)
	assert.Equal(t, "title", req.Sort)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, listquery.MaxPageSize, req.PageSize)
}

func TestParseRequest_Defaults(t *testing.T) {
	req := listquery.ParseRequest(url.Values{"page": {"abc"}, "sort": {"bogus"}}, jobSpec)

	assert.Empty(t, req.Filters)
	assert.Empty(t, req.Sort)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, listquery.DefaultPageSize, req.PageSize)
}
