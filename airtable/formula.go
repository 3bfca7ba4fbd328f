package airtable

import (
	"fmt"
	"strconv"
	"strings"
)

// EqText builds an equality predicate against a text column.
func EqText(field, value string) string {
	escaped := strings.ReplaceAll(value, `'`, `\'`)
	return fmt.Sprintf("{%s} = '%s'", field, escaped)
}

// EqNumber builds an equality predicate against a numeric column.
func EqNumber(field string, value float64) string {
	return fmt.Sprintf("{%s} = %s", field, strconv.FormatFloat(value, 'f', -1, 64))
}

// And combines predicates into an AND(...) formula. A single predicate is
// returned as-is and an empty list yields the empty string.
func And(conds ...string) string {
	switch len(conds) {
	case 0:
		return ""
	case 1:
		return conds[0]
	default:
		return fmt.Sprintf("AND(%s)", strings.Join(conds, ", "))
	}
}
