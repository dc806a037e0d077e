package workflow

import (
	"regexp"

	"github.com/uptrace/bun"
)

// Criteria narrows a subject query. Criteria are applied after the status
// filter, so any Where they add is ANDed with it.
type Criteria func(q *bun.SelectQuery) *bun.SelectQuery

// Where adds a condition using bun placeholders.
func Where(query string, args ...any) Criteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(query, args...)
	}
}

// OrderBy adds an ORDER BY expression, e.g. "created_at ASC".
func OrderBy(expr string, args ...any) Criteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr(expr, args...)
	}
}

// Limit caps the number of returned rows.
func Limit(n int) Criteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Limit(n)
	}
}

// Offset skips rows. Combine with Limit for portable pagination.
func Offset(n int) Criteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Offset(n)
	}
}

var identifierPattern = regexp.MustCompile(`^[_a-zA-Z]\w*$`)

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func applyCriteria(q *bun.SelectQuery, criteria []Criteria) *bun.SelectQuery {
	for _, c := range criteria {
		if c != nil {
			q = c(q)
		}
	}
	return q
}
