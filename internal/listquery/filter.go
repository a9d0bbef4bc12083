package listquery

import (
	"slices"
	"strconv"
	"strings"
)

// Match selects how a filter value is compared against its column(s).
type Match uint8

const (
	// Equals renders "col = ?".
	Equals Match = iota
	// Contains renders "col LIKE ? ESCAPE '!'" with the value wrapped as
	// %value%; wildcards typed by the user match literally. When a field names
	// several columns they are OR-ed inside one parenthesised predicate and
	// the value is bound once per column.
	Contains
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ValueType is the primitive type a filter value is parsed into.
type ValueType uint8

const (
	TextValue ValueType = iota
	IntValue
)

// FilterField whitelists one request parameter for a list page.
type FilterField struct {
	Name    string
	Columns []string
	Match   Match
	Type    ValueType

	// Sentinel is the raw value that means "show all" besides the empty
	// string, e.g. "0" for category or "-1" for verified.
	Sentinel string

	// Allowed restricts text values to a fixed set (status, role, ...).
	Allowed []string
}

// Text declares a LIKE search over one or more columns.
func Text(name string, columns ...string) FilterField {
	return FilterField{Name: name, Columns: columns, Match: Contains, Type: TextValue}
}

// Enum declares an exact text match restricted to allowed values.
func Enum(name, column string, allowed ...string) FilterField {
	return FilterField{Name: name, Columns: []string{column}, Match: Equals, Type: TextValue, Allowed: allowed}
}

// Number declares an exact integer match; sentinel disables the filter.
func Number(name, column string, sentinel int64) FilterField {
	return FilterField{
		Name:     name,
		Columns:  []string{column},
		Match:    Equals,
		Type:     IntValue,
		Sentinel: strconv.FormatInt(sentinel, 10),
	}
}

// Predicate is one WHERE condition together with its bind values.
type Predicate struct {
	Field    string
	Fragment string
	Params   []Param
}

// Predicate returns the condition produced by raw, or false when raw is
// empty, a sentinel, not parseable or outside the allowed set.
func (f FilterField) Predicate(raw string) (Predicate, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(f.Columns) == 0 {
		return Predicate{}, false
	}

	var value Param
	switch f.Type {
	case IntValue:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Predicate{}, false
		}
		if f.Sentinel != "" {
			if s, err := strconv.ParseInt(f.Sentinel, 10, 64); err == nil && s == n {
				return Predicate{}, false
			}
		}
		value = Int(n)
	default:
		if f.Sentinel != "" && raw == f.Sentinel {
			return Predicate{}, false
		}
		if len(f.Allowed) > 0 && !slices.Contains(f.Allowed, raw) {
			return Predicate{}, false
		}
		if f.Match == Contains {
			raw = "%" + likeEscaper.Replace(raw) + "%"
		}
		value = String(raw)
	}

	cond := " = ?"
	if f.Match == Contains {
		cond = " LIKE ? ESCAPE '!'"
	}

	parts := make([]string, len(f.Columns))
	params := make([]Param, len(f.Columns))
	for i, col := range f.Columns {
		parts[i] = col + cond
		params[i] = value
	}

	fragment := parts[0]
	if len(parts) > 1 {
		fragment = "(" + strings.Join(parts, " OR ") + ")"
	}
	return Predicate{Field: f.Name, Fragment: fragment, Params: params}, true
}

// Predicates builds the ordered predicate list for a request. Order follows
// the field declaration order so identical filters always render identical
// SQL.
func Predicates(fields []FilterField, filters map[string]string) []Predicate {
	var out []Predicate
	for _, f := range fields {
		raw, ok := filters[f.Name]
		if !ok {
			continue
		}
		if p, ok := f.Predicate(raw); ok {
			out = append(out, p)
		}
	}
	return out
}
