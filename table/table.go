package table

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/dot5enko/typed-table/schema"
)

var ErrRowRange = errors.New("row index out of range")

// Table is growable columnar storage for one schema: one typed contiguous
// array per field, all arrays always the same logical length. The table
// owns every stored value; rows are exposed as RowViews aliasing the live
// column cells.
//
// Appending may reallocate column arrays, which invalidates every RowView
// previously produced by the table. Reads through multiple views may run
// concurrently; mutation must be serialized by the caller.
type Table struct {
	sch  *schema.Schema
	uid  uuid.UUID
	cols []schema.Column
	rows int

	observers []Observer
}

func NewTable(s *schema.Schema) *Table {
	cols := make([]schema.Column, s.NumFields())
	for i := range cols {
		cols[i] = s.NewColumn(i)
	}
	return &Table{
		sch:  s,
		uid:  uuid.New(),
		cols: cols,
	}
}

func (t *Table) Schema() *schema.Schema { return t.sch }

func (t *Table) Uid() uuid.UUID { return t.uid }

// Size returns the current row count.
func (t *Table) Size() int { return t.rows }

// AddObserver registers an observer notified after each committed append.
func (t *Table) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

// AppendValues appends one row from a positional tuple, one value per
// field in schema order. The whole tuple is coerced before any column is
// touched and the row count moves only after every field's cell has been
// constructed, so a failed append leaves the table exactly as it was.
func (t *Table) AppendValues(values ...any) error {
	if len(values) != t.sch.NumFields() {
		return fmt.Errorf("%d values for %d fields: %w",
			len(values), t.sch.NumFields(), schema.ErrArity)
	}
	coerced := make([]any, len(values))
	for i, v := range values {
		cv, err := t.sch.Coerce(i, v)
		if err != nil {
			return err
		}
		coerced[i] = cv
	}
	return t.appendCoerced(coerced)
}

// Append appends one row copied out of a Row or RowView. A source whose
// schema lists the same fields in a different order is aligned by name.
func (t *Table) Append(src Rowlike) error {
	ss := src.Schema()
	if ss.NumFields() != t.sch.NumFields() {
		return fmt.Errorf("%d fields into %d columns: %w",
			ss.NumFields(), t.sch.NumFields(), schema.ErrArity)
	}
	values := make([]any, t.sch.NumFields())
	if ss == t.sch {
		for i := range values {
			values[i] = ss.Load(i, src.FieldPtr(i))
		}
	} else {
		for i := range values {
			name := t.sch.FieldName(i)
			j, ok := ss.IndexOf(name)
			if !ok {
				return fmt.Errorf("source has no field %q: %w", name, schema.ErrUnknownField)
			}
			values[i] = ss.Load(j, src.FieldPtr(j))
		}
	}
	return t.AppendValues(values...)
}

func (t *Table) appendCoerced(values []any) error {
	grown := 0
	for i, v := range values {
		if err := t.cols[i].Append(v); err != nil {
			// roll the already grown columns back so no length skew is
			// ever observable
			for j := 0; j < grown; j++ {
				t.cols[j].Truncate(t.rows)
			}
			return err
		}
		grown++
	}
	t.rows++
	for _, o := range t.observers {
		o.OnAppend(t.uid, t.rows-1)
	}
	return nil
}

// IsValidRow returns an error if the index is outside [0, Size()).
func (t *Table) IsValidRow(i int) error {
	if i < 0 || i >= t.rows {
		return fmt.Errorf("row %d of %d: %w", i, t.rows, ErrRowRange)
	}
	return nil
}

// Row returns the view of row i, aliasing the live column cells. It panics
// on an out-of-range index; use IsValidRow first when an error is wanted.
func (t *Table) Row(i int) RowView {
	if err := t.IsValidRow(i); err != nil {
		panic(err)
	}
	ptrs := make([]any, len(t.cols))
	for j, c := range t.cols {
		ptrs[j] = c.Ptr(i)
	}
	return RowView{sch: t.sch, ptrs: ptrs}
}

// Rows returns a lazy, restartable sequence of RowViews in index order.
// Nothing is copied; each view aliases the table's storage.
func (t *Table) Rows() iter.Seq[RowView] {
	return func(yield func(RowView) bool) {
		for i := 0; i < t.rows; i++ {
			if !yield(t.Row(i)) {
				return
			}
		}
	}
}

// View returns the identity view of the table, the starting point for
// Relabel, Project and Without at table granularity.
func (t *Table) View() *TableView {
	mapping := make([]int, len(t.cols))
	for i := range mapping {
		mapping[i] = i
	}
	return &TableView{base: t, sch: t.sch, mapping: mapping}
}

func (t *Table) String() string {
	return fmt.Sprintf("table{%s, %d rows}", t.sch, t.rows)
}
