package table

import (
	"fmt"

	"github.com/dot5enko/typed-table/schema"
)

// Row owns one value per schema field. Cells are constructed from source
// values at creation, assignment replaces the contained values without
// moving the cells themselves, so addresses handed out by Ref stay valid
// for the life of the row.
//
// A Row value is a handle: plain Go assignment shares the cells. Copy
// produces an independent row.
type Row struct {
	sch   *schema.Schema
	cells []any
}

// NewRow constructs a row from one value per field, in schema order. Each
// cell is constructed directly from its value; a tuple that does not fit
// the schema is an error and no row is produced.
func NewRow(s *schema.Schema, values ...any) (Row, error) {
	if len(values) != s.NumFields() {
		return Row{}, fmt.Errorf("%d values for %d fields: %w",
			len(values), s.NumFields(), schema.ErrArity)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cell, err := s.NewCell(i, v)
		if err != nil {
			return Row{}, err
		}
		cells[i] = cell
	}
	return Row{sch: s, cells: cells}, nil
}

// MustNewRow is NewRow for declaration sites, panicking on failure.
func MustNewRow(s *schema.Schema, values ...any) Row {
	r, err := NewRow(s, values...)
	if err != nil {
		panic(err)
	}
	return r
}

// RowOf copies any row-like value into a new owning Row of the same schema.
func RowOf(src Rowlike) Row {
	s := src.Schema()
	cells := make([]any, s.NumFields())
	for i := range cells {
		cells[i] = s.CopyCell(i, src.FieldPtr(i))
	}
	return Row{sch: s, cells: cells}
}

func (r Row) Schema() *schema.Schema { return r.sch }

func (r Row) FieldPtr(i int) any { return r.cells[i] }

// Assign replaces the row's values from a positional tuple. The row's own
// cell addresses do not change.
func (r Row) Assign(values ...any) error {
	return assignValues(r, values)
}

// AssignRow replaces the row's values from another Row or RowView, aligned
// by name when the schemas differ in order.
func (r Row) AssignRow(src Rowlike) error {
	return assignRowInto(r, src)
}

// Values reads the row out as a positional tuple of independent copies.
func (r Row) Values() []any { return valuesOf(r) }

// Refs decomposes the row by reference: the returned addresses are the
// row's own cells, mutating them mutates the row and nothing else.
func (r Row) Refs() []any { return refsOf(r) }

// Scan decomposes the row by value into one typed pointer per field.
func (r Row) Scan(dsts ...any) error { return scanInto(r, dsts) }

// Equal compares field values by name against another row-like value.
func (r Row) Equal(other Rowlike) bool { return rowsEqual(r, other) }

// EqualValues compares the row against a positional tuple in schema order.
func (r Row) EqualValues(values ...any) bool { return equalTuple(r, values) }

// Copy returns an independent row with the same schema and values.
func (r Row) Copy() Row { return RowOf(r) }

func (r Row) String() string { return formatRow("row", r) }
