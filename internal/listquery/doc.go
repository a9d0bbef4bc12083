// Package listquery builds the list/count query pair behind every admin
// list page.
//
// A page declares a Spec: the table, selected columns, joins, whitelisted
// filter fields and sort keys. Each request is parsed into a Request, which
// NewPlan turns into an ordered predicate list. Both the page query and the
// count query are rendered from that one list:
//
//	plan := listquery.NewPlan(spec, req)
//	count, _ := plan.CountQuery() // SELECT COUNT(*) ... WHERE ...
//	list, _ := plan.ListQuery(page, size) // SELECT ... WHERE ... ORDER BY ... LIMIT ? OFFSET ?
//
// Filter values equal to the empty string or to the field's sentinel
// ("0" for "all categories", "-1" for "any verification state") never
// produce a predicate. Requests past the last page are clamped to it.
package listquery
