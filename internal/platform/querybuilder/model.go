package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx/reflectx"
)

// mapper resolves columns from the same db tags sqlx scans into.
var mapper = reflectx.NewMapperFunc("db", strings.ToLower)

// InsertModel renders a single-row INSERT from the top-level db-tagged fields
// of model. onConflict, when set, is appended verbatim.
func InsertModel(table string, model any, onConflict string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errNoTable
	}

	columns, values, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	var w writer
	w.raw("INSERT INTO ", table, " (", strings.Join(columns, ", "), ") VALUES (")
	for i, v := range values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
	if tail := strings.TrimSpace(onConflict); tail != "" {
		w.raw(" ", tail)
	}
	query, args := w.result()
	return query, args, nil
}

func modelColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", v.Kind())
	}

	fields := mapper.TypeMap(v.Type()).Tree.Children
	columns := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for _, fi := range fields {
		// Untagged fields get a mapper-derived name; only explicit tags are columns.
		if fi == nil || fi.Field.Tag.Get("db") == "" {
			continue
		}
		columns = append(columns, fi.Name)
		values = append(values, reflectx.FieldByIndexesReadOnly(v, fi.Index).Interface())
	}
	if len(columns) == 0 {
		return nil, nil, errNoColumns
	}
	return columns, values, nil
}
