package pgrepo

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows набор строк в памяти для MockDBTX.Query. Значения каждой строки перечислены в порядке колонок.
type fakeRows struct {
	rows   [][]any
	cursor int
	err    error
	closed bool
}

func newFakeRows(rows ...[]any) *fakeRows {
	return &fakeRows{rows: rows, cursor: -1}
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.cursor+1 >= len(r.rows) {
		return false
	}
	r.cursor++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.cursor], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.rows[r.cursor], dest)
}

// fakeRow результат MockDBTX.QueryRow.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.values, dest)
}

func scanInto(values, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: column %d: %s is not assignable to %s", i, v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}
