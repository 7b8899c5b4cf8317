// Package querybuilder renders the small set of postgres statements the
// repositories issue. Placeholders are numbered in the order arguments are
// bound, so conditions compose without manual $n bookkeeping.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
	errNoSets    = errors.New("at least one SET column is required")
)

// writer accumulates SQL text and its bound arguments.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes fragment, binding one argument per '?'. Surplus '?' are kept
// verbatim so postgres operators such as jsonb ? survive.
func (w *writer) expr(fragment string, args []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sql.WriteByte(fragment[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c(w)
	}
}

func (w *writer) result() (string, []any) {
	return w.sql.String(), w.args
}

// Condition is one predicate of a WHERE clause; predicates are AND-ed.
type Condition func(*writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column, " = ")
		w.bind(value)
	}
}

func Gt(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column, " > ")
		w.bind(value)
	}
}

func Lte(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column, " <= ")
		w.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(w *writer) { w.raw(column, " IS NULL") }
}

// In renders a false predicate for an empty list.
func In[T any](column string, values []T) Condition {
	return func(w *writer) {
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column, " IN (")
		for i, v := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.bind(v)
		}
		w.raw(")")
	}
}

// Expr is an escape hatch with '?' placeholders.
func Expr(fragment string, args ...any) Condition {
	return func(w *writer) { w.expr(fragment, args) }
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}

	var w writer
	w.raw("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ", strconv.Itoa(b.limit))
	}
	query, args := w.result()
	return query, args, nil
}

type assignment struct {
	column string
	value  any
	expr   string
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
	tail  string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression such as "version + 1" or "NOW()".
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

// Returning appends a RETURNING list.
func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.tail = "RETURNING " + strings.Join(columns, ", ")
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.sets) == 0 {
		return "", nil, errNoSets
	}

	var w writer
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		if s.isExpr {
			w.raw(s.expr)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	if b.tail != "" {
		w.raw(" ", b.tail)
	}
	query, args := w.result()
	return query, args, nil
}
