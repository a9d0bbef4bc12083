package listquery

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var errNoTable = errors.New("no table selected")

// Query is rendered SQL with "?" placeholders and its typed bind values.
type Query struct {
	SQL    string
	Params []Param
}

func (q Query) Args() []any {
	return Args(q.Params)
}

// Plan is the predicate list of one request. The list query and the count
// query are both rendered from the same Plan, so they can never disagree on
// which rows match.
type Plan struct {
	spec       Spec
	predicates []Predicate
	order      string
}

// NewPlan resolves the request's filters and sort key against spec.
func NewPlan(spec Spec, req Request) Plan {
	order := spec.Sorts[req.Sort]
	if order == "" {
		order = spec.Sorts[spec.DefaultSort]
	}
	return Plan{
		spec:       spec,
		predicates: Predicates(spec.Fields, req.Filters),
		order:      order,
	}
}

func (p Plan) Predicates() []Predicate {
	return p.predicates
}

// ListQuery renders the page query. page is clamped to at least 1.
func (p Plan) ListQuery(page, pageSize int) (Query, error) {
	if len(p.spec.Columns) == 0 {
		return Query{}, &QueryError{Stage: "build", Err: errors.New("no columns selected")}
	}
	if p.spec.Table == "" {
		return Query{}, &QueryError{Stage: "build", Err: errNoTable}
	}
	if page < 1 {
		page = 1
	}
	pageSize = normalizePageSize(pageSize)
	offset := (page - 1) * pageSize

	b := p.selectFrom(p.spec.Columns...)
	if len(p.spec.GroupBy) > 0 {
		b = b.GroupBy(p.spec.GroupBy...)
	}
	if p.order != "" {
		b = b.OrderBy(p.order)
	}
	b = b.Suffix("LIMIT ? OFFSET ?", pageSize, offset)

	params := append(p.filterParams(), Int(int64(pageSize)), Int(int64(offset)))
	return render(b, params)
}

// CountQuery renders the matching COUNT query: same joins and predicates,
// no ordering or paging.
func (p Plan) CountQuery() (Query, error) {
	if p.spec.Table == "" {
		return Query{}, &QueryError{Stage: "build", Err: errNoTable}
	}
	if len(p.spec.GroupBy) > 1 {
		inner := p.selectFrom(p.groupColumns()...).GroupBy(p.spec.GroupBy...)
		return render(sq.Select("COUNT(*)").FromSelect(inner, "grouped").PlaceholderFormat(sq.Question), p.filterParams())
	}
	return render(p.selectFrom(p.countColumn()), p.filterParams())
}

func (p Plan) selectFrom(columns ...string) sq.SelectBuilder {
	b := sq.Select(columns...).From(p.spec.Table).PlaceholderFormat(sq.Question)
	for _, j := range p.spec.Joins {
		b = b.JoinClause(j)
	}
	for _, pred := range p.predicates {
		b = b.Where(pred.Fragment, Args(pred.Params)...)
	}
	return b
}

func (p Plan) filterParams() []Param {
	params := make([]Param, 0, len(p.predicates))
	for _, pred := range p.predicates {
		params = append(params, pred.Params...)
	}
	return params
}

// countColumn counts distinct groups for a single GROUP BY column. Several
// group columns are counted through a subquery instead, since PostgreSQL has
// no multi-argument COUNT(DISTINCT).
func (p Plan) countColumn() string {
	if len(p.spec.GroupBy) == 0 {
		return "COUNT(*)"
	}
	return fmt.Sprintf("COUNT(DISTINCT %s)", p.groupColumns()[0])
}

func (p Plan) groupColumns() []string {
	cols := make([]string, len(p.spec.GroupBy))
	for i, c := range p.spec.GroupBy {
		c = strings.TrimSpace(c)
		cols[i] = strings.TrimSuffix(strings.TrimSuffix(c, " ASC"), " DESC")
	}
	return cols
}

func render(b sq.SelectBuilder, params []Param) (Query, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return Query{}, &QueryError{Stage: "build", Err: err}
	}
	if len(args) != len(params) {
		return Query{}, &QueryError{
			Stage: "build",
			SQL:   sql,
			Err:   fmt.Errorf("placeholder mismatch: %d bound, %d typed", len(args), len(params)),
		}
	}
	return Query{SQL: sql, Params: params}, nil
}

// BuildListQuery renders the page query for req.
func BuildListQuery(spec Spec, req Request) (Query, error) {
	return NewPlan(spec, req).ListQuery(req.Page, req.PageSize)
}

// BuildCountQuery renders the count query for req.
func BuildCountQuery(spec Spec, req Request) (Query, error) {
	return NewPlan(spec, req).CountQuery()
}
