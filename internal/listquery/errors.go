package listquery

import "fmt"

// QueryError reports a list or count query that could not be built or run.
type QueryError struct {
	Stage string // "build", "count" or "list"
	SQL   string
	Err   error
}

func (e *QueryError) Error() string {
	if e.SQL == "" {
		return fmt.Sprintf("listquery %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("listquery %s: %v (sql: %s)", e.Stage, e.Err, e.SQL)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
