package table

import (
	"fmt"

	"github.com/dot5enko/typed-table/schema"
)

// RowView aliases one externally owned value per schema field. It never
// allocates or frees field storage; reads and writes pass through to the
// aliased values, which may be plain variables or a Table's column cells.
// Assignment through a view mutates the aliased storage in place, it never
// rebinds the addresses.
//
// A view must not outlive the storage it aliases; in particular a view
// into a Table is invalidated by any append that grows the columns.
type RowView struct {
	sch  *schema.Schema
	ptrs []any
}

// ViewOf binds a view over caller-owned values, one typed pointer per
// field in schema order. Pointer types are validated against the schema up
// front; a mismatched pointer is an error and no view is produced.
func ViewOf(s *schema.Schema, ptrs ...any) (RowView, error) {
	if len(ptrs) != s.NumFields() {
		return RowView{}, fmt.Errorf("%d addresses for %d fields: %w",
			len(ptrs), s.NumFields(), schema.ErrArity)
	}
	bound := make([]any, len(ptrs))
	for i, p := range ptrs {
		if err := s.CheckPtr(i, p); err != nil {
			return RowView{}, err
		}
		bound[i] = p
	}
	return RowView{sch: s, ptrs: bound}, nil
}

// MustViewOf is ViewOf for declaration sites, panicking on failure.
func MustViewOf(s *schema.Schema, ptrs ...any) RowView {
	v, err := ViewOf(s, ptrs...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v RowView) Schema() *schema.Schema { return v.sch }

func (v RowView) FieldPtr(i int) any { return v.ptrs[i] }

// Assign writes a positional tuple through the view into the aliased
// storage, field by field in schema order.
func (v RowView) Assign(values ...any) error {
	return assignValues(v, values)
}

// AssignRow writes another row-like value through the view, aligned by
// name when the schemas differ in order.
func (v RowView) AssignRow(src Rowlike) error {
	return assignRowInto(v, src)
}

// Values reads the aliased values out as a positional tuple of copies.
func (v RowView) Values() []any { return valuesOf(v) }

// Refs decomposes the view by reference: exactly the aliased addresses.
func (v RowView) Refs() []any { return refsOf(v) }

// Scan decomposes the view by value into one typed pointer per field.
func (v RowView) Scan(dsts ...any) error { return scanInto(v, dsts) }

// Equal compares the aliased values by name against another row-like value.
func (v RowView) Equal(other Rowlike) bool { return rowsEqual(v, other) }

// EqualValues compares the view against a positional tuple in schema order.
func (v RowView) EqualValues(values ...any) bool { return equalTuple(v, values) }

// Copy materializes the current aliased values into an independent Row.
func (v RowView) Copy() Row { return RowOf(v) }

func (v RowView) String() string { return formatRow("row_view", v) }
