package services

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const listingSchema = `
CREATE TABLE companies (
	id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT, industry TEXT, location TEXT,
	verified INTEGER NOT NULL DEFAULT 0, logo_path TEXT, created_at TEXT NOT NULL
);
CREATE TABLE categories (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE jobs (
	id INTEGER PRIMARY KEY, company_id INTEGER, category_id INTEGER, title TEXT, description TEXT,
	status TEXT, job_type TEXT, featured INTEGER NOT NULL DEFAULT 0, location TEXT, deadline TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE applications (id INTEGER PRIMARY KEY, job_id INTEGER, user_id INTEGER, status TEXT, created_at TEXT)`

const listingPageSize = 4

func seedListings(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range strings.Split(listingSchema, ";") {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	industries := []string{"Fintech", "Health", "Retail"}
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("Company %02d", i)
		switch i {
		case 5:
			name = "Acme Labs"
		case 9:
			name = "Acme Works"
		case 12:
			name = "100% Remote"
		}
		created := "2026-01-01 00:00:00"
		if i > 6 {
			created = fmt.Sprintf("2026-01-%02d 00:00:00", i)
		}
		_, err := db.Exec(
			"INSERT INTO companies (id, name, email, industry, verified, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			i, name, fmt.Sprintf("hr%d@example.com", i), industries[i%3], boolInt(i%3 == 0), created)
		require.NoError(t, err)
	}
	for i := 1; i <= 3; i++ {
		_, err := db.Exec("INSERT INTO categories (id, name) VALUES (?, ?)", i, fmt.Sprintf("Category %d", i))
		require.NoError(t, err)
	}

	statuses := []string{"pending", "active", "rejected", "closed"}
	for i := 1; i <= 15; i++ {
		title := fmt.Sprintf("Role %d", i%5)
		if i%4 == 0 {
			title = "Go Developer"
		}
		_, err := db.Exec(
			`INSERT INTO jobs (id, company_id, category_id, title, description, status, job_type, featured, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, i%6+1, i%3+1, title, "", statuses[i%4], "full-time", boolInt(i%2 == 0),
			fmt.Sprintf("2026-02-0%d 09:00:00", i%3+1))
		require.NoError(t, err)
	}
	for i, jobID := range []int{1, 1, 2, 7} {
		_, err := db.Exec("INSERT INTO applications (id, job_id, user_id, status) VALUES (?, ?, ?, 'submitted')",
			i+1, jobID, i+10)
		require.NoError(t, err)
	}
	return db
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func countRows(t *testing.T, db *sql.DB, q listquery.Query) int64 {
	t.Helper()
	var total int64
	require.NoError(t, db.QueryRow(q.SQL, q.Args()...).Scan(&total), q.SQL)
	return total
}

// pageIDs returns the first column of every row of q.
func pageIDs(t *testing.T, db *sql.DB, q listquery.Query) []int64 {
	t.Helper()
	rows, err := db.Query(q.SQL, q.Args()...)
	require.NoError(t, err, q.SQL)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)

	var ids []int64
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		require.NoError(t, rows.Scan(ptrs...))
		id, ok := vals[0].(int64)
		require.True(t, ok, "id column is %T", vals[0])
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

// walkPages checks that paging through every sort returns each counted row
// exactly once, and that a page past the end lands on the last page.
func walkPages(t *testing.T, db *sql.DB, spec listquery.Spec, filters map[string]string) int64 {
	t.Helper()
	plan := listquery.NewPlan(spec, listquery.Request{Filters: filters})
	countQ, err := plan.CountQuery()
	require.NoError(t, err)
	total := countRows(t, db, countQ)

	sorts := make([]string, 0, len(spec.Sorts))
	for name := range spec.Sorts {
		sorts = append(sorts, name)
	}
	sort.Strings(sorts)

	for _, s := range sorts {
		plan := listquery.NewPlan(spec, listquery.Request{Filters: filters, Sort: s})
		pages := listquery.Paginate(total, listingPageSize, 1).TotalPages

		seen := map[int64]bool{}
		for page := 1; page <= pages; page++ {
			q, err := plan.ListQuery(page, listingPageSize)
			require.NoError(t, err)
			for _, id := range pageIDs(t, db, q) {
				assert.False(t, seen[id], "sort %s: id %d repeated", s, id)
				seen[id] = true
			}
		}
		assert.Len(t, seen, int(total), "sort %s", s)

		last := listquery.Paginate(total, listingPageSize, 99)
		q, err := plan.ListQuery(last.Number, listingPageSize)
		require.NoError(t, err)
		want := int(total) - (last.Number-1)*listingPageSize
		if total == 0 {
			want = 0
		}
		assert.Len(t, pageIDs(t, db, q), want, "sort %s: clamped page", s)
	}
	return total
}

func TestCompanyListing_CountMatchesRows(t *testing.T) {
	db := seedListings(t)

	tests := []struct {
		name    string
		filters map[string]string
		want    int64
	}{
		{name: "all", filters: map[string]string{}, want: 12},
		{name: "verified sentinel", filters: map[string]string{"verified": "-1"}, want: 12},
		{name: "unverified", filters: map[string]string{"verified": "0"}, want: 8},
		{name: "verified", filters: map[string]string{"verified": "1"}, want: 4},
		{name: "search", filters: map[string]string{"search": "acme"}, want: 2},
		{name: "literal percent", filters: map[string]string{"search": "%"}, want: 1},
		{name: "industry and verified", filters: map[string]string{"industry": "fin", "verified": "1"}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, walkPages(t, db, CompanyListSpec, tt.filters))
		})
	}
}

func TestJobListing_CountMatchesRows(t *testing.T) {
	db := seedListings(t)

	tests := []struct {
		name    string
		filters map[string]string
		want    int64
	}{
		{name: "all", filters: map[string]string{}, want: 15},
		{name: "active with category sentinel", filters: map[string]string{"status": "active", "category": "0"}, want: 4},
		{name: "not featured", filters: map[string]string{"featured": "0"}, want: 8},
		{name: "featured", filters: map[string]string{"featured": "1"}, want: 7},
		{name: "unknown status ignored", filters: map[string]string{"status": "bogus"}, want: 15},
		{name: "search title", filters: map[string]string{"search": "developer"}, want: 3},
		{name: "company", filters: map[string]string{"company": "2", "featured": "-1"}, want: 3},
		{name: "underscore is literal", filters: map[string]string{"search": "_"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, walkPages(t, db, JobListSpec, tt.filters))
		})
	}
}
