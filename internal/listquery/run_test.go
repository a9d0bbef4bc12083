package listquery_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobRow struct {
	ID     int64  `gorm:"column:id"`
	Title  string `gorm:"column:title"`
	Status string `gorm:"column:status"`
}

const (
	countActiveSQL = "SELECT COUNT(*) " + jobFrom + " WHERE j.status = ?"
	listActiveSQL  = "SELECT j.id, j.title, j.status " + jobFrom + " WHERE j.status = ? ORDER BY j.created_at DESC LIMIT ? OFFSET ?"
)

func TestRun_ClampsPastLastPage(t *testing.T) {
	db, mock := testutil.MockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countActiveSQL)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery(regexp.QuoteMeta(listActiveSQL)).
		WithArgs("active", 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
			AddRow(21, "Go Developer", "active").
			AddRow(22, "SRE", "active").
			AddRow(23, "DBA", "active"))

	req := listquery.Request{
		Filters:  map[string]string{"status": "active", "category": "0"},
		Page:     4,
		PageSize: 10,
	}
	res, err := listquery.Run[jobRow](context.Background(), db, jobSpec, req)

	require.NoError(t, err)
	assert.Equal(t, int64(23), res.TotalRecords)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.CurrentPage)
	assert.Equal(t, 10, res.PageSize)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "Go Developer", res.Rows[0].Title)
}

func TestRun_EmptyResult(t *testing.T) {
	db, mock := testutil.MockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countActiveSQL)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(listActiveSQL)).
		WithArgs("active", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}))

	req := listquery.Request{Filters: map[string]string{"status": "active"}, Page: 1, PageSize: 10}
	res, err := listquery.Run[jobRow](context.Background(), db, jobSpec, req)

	require.NoError(t, err)
	assert.Zero(t, res.TotalRecords)
	assert.Zero(t, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Empty(t, res.Rows)
}

func TestRun_RepeatedReadsAreIdentical(t *testing.T) {
	db, mock := testutil.MockDB(t)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(countActiveSQL)).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(regexp.QuoteMeta(listActiveSQL)).
			WithArgs("active", 10, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
				AddRow(1, "Backend", "active").
				AddRow(2, "Frontend", "active"))
	}

	req := listquery.Request{Filters: map[string]string{"status": "active"}, Page: 1, PageSize: 10}
	first, err := listquery.Run[jobRow](context.Background(), db, jobSpec, req)
	require.NoError(t, err)
	second, err := listquery.Run[jobRow](context.Background(), db, jobSpec, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(len(first.Rows)), first.TotalRecords)
}

func TestRun_CountFailureIsStructured(t *testing.T) {
	db, mock := testutil.MockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countActiveSQL)).
		WithArgs("active").
		WillReturnError(errors.New("relation \"jobs\" does not exist"))

	req := listquery.Request{Filters: map[string]string{"status": "active"}, Page: 1, PageSize: 10}
	_, err := listquery.Run[jobRow](context.Background(), db, jobSpec, req)

	var qerr *listquery.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, "count", qerr.Stage)
	assert.Equal(t, countActiveSQL, qerr.SQL)
}
