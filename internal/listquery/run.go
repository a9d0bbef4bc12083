package listquery

import (
	"context"

	"gorm.io/gorm"
)

// PageResult is one rendered page of a list view.
type PageResult[T any] struct {
	Rows         []T   `json:"rows"`
	TotalRecords int64 `json:"total_records"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
}

// Run counts the matching rows, clamps the requested page and fetches it.
// Rows are scanned into T by column name.
func Run[T any](ctx context.Context, db *gorm.DB, spec Spec, req Request) (*PageResult[T], error) {
	plan := NewPlan(spec, req)
	pageSize := normalizePageSize(req.PageSize)

	countQuery, err := plan.CountQuery()
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.WithContext(ctx).Raw(countQuery.SQL, countQuery.Args()...).Scan(&total).Error; err != nil {
		return nil, &QueryError{Stage: "count", SQL: countQuery.SQL, Err: err}
	}

	page := Paginate(total, pageSize, req.Page)

	listQuery, err := plan.ListQuery(page.Number, pageSize)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, pageSize)
	if err := db.WithContext(ctx).Raw(listQuery.SQL, listQuery.Args()...).Scan(&rows).Error; err != nil {
		return nil, &QueryError{Stage: "list", SQL: listQuery.SQL, Err: err}
	}

	return &PageResult[T]{
		Rows:         rows,
		TotalRecords: total,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.Number,
		PageSize:     pageSize,
	}, nil
}
