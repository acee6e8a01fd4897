package table

import (
	"strings"

	"github.com/dot5enko/typed-table/schema"
)

// Structural operators. Each derives a new schema through the schema
// package (which is where unknown names, duplicate selections and name
// collisions are rejected) and preserves the variant of its input: a Row's
// subset is an independent Row, a RowView's subset aliases the very same
// addresses as the source.

// Subset selects the named fields of the row, in the requested order, into
// a new owning Row with copied cells.
func (r Row) Subset(cols ...schema.Col) (Row, error) {
	derived, mapping, err := r.sch.Project(cols...)
	if err != nil {
		return Row{}, err
	}
	return Row{sch: derived, cells: pickCells(r.sch, r.cells, mapping)}, nil
}

// Drop removes the named fields, keeping the rest in their original order.
func (r Row) Drop(cols ...schema.Col) (Row, error) {
	derived, mapping, err := r.sch.Without(cols...)
	if err != nil {
		return Row{}, err
	}
	return Row{sch: derived, cells: pickCells(r.sch, r.cells, mapping)}, nil
}

// Relabel renames fields without reordering them. The result is an
// independent owning Row; only the names change.
func (r Row) Relabel(renames ...schema.Rename) (Row, error) {
	derived, err := r.sch.Relabel(renames...)
	if err != nil {
		return Row{}, err
	}
	cells := make([]any, len(r.cells))
	for i := range cells {
		cells[i] = r.sch.CopyCell(i, r.cells[i])
	}
	return Row{sch: derived, cells: cells}, nil
}

// Subset selects the named fields of the view, in the requested order. The
// result aliases the source's addresses: for every selected field,
// Ref through the subset is the same pointer as Ref through the source,
// and assigning through the subset mutates only the selected fields.
func (v RowView) Subset(cols ...schema.Col) (RowView, error) {
	derived, mapping, err := v.sch.Project(cols...)
	if err != nil {
		return RowView{}, err
	}
	return RowView{sch: derived, ptrs: pickPtrs(v.ptrs, mapping)}, nil
}

// Drop removes the named fields from the view, aliasing the rest.
func (v RowView) Drop(cols ...schema.Col) (RowView, error) {
	derived, mapping, err := v.sch.Without(cols...)
	if err != nil {
		return RowView{}, err
	}
	return RowView{sch: derived, ptrs: pickPtrs(v.ptrs, mapping)}, nil
}

// Relabel renames the view's fields. No value is copied or moved: the
// relabeled view holds exactly the source's addresses under the new names.
func (v RowView) Relabel(renames ...schema.Rename) (RowView, error) {
	derived, err := v.sch.Relabel(renames...)
	if err != nil {
		return RowView{}, err
	}
	ptrs := make([]any, len(v.ptrs))
	copy(ptrs, v.ptrs)
	return RowView{sch: derived, ptrs: ptrs}, nil
}

// RowCat concatenates two or more row-like values into one owning Row
// whose schema is the ordered concatenation of the inputs' schemas, each
// input's fields in their original order. Values are copied out of the
// inputs. A field name occurring in more than one input is an error.
func RowCat(rows ...Rowlike) (Row, error) {
	schemas := make([]*schema.Schema, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		schemas[i] = r.Schema()
		names[i] = r.Schema().Name
	}
	derived, err := schema.Concat(strings.Join(names, "+"), schemas...)
	if err != nil {
		return Row{}, err
	}
	cells := make([]any, 0, derived.NumFields())
	for _, r := range rows {
		s := r.Schema()
		for i := 0; i < s.NumFields(); i++ {
			cells = append(cells, s.CopyCell(i, r.FieldPtr(i)))
		}
	}
	return Row{sch: derived, cells: cells}, nil
}

// MustRowCat is RowCat for declaration sites, panicking on failure.
func MustRowCat(rows ...Rowlike) Row {
	r, err := RowCat(rows...)
	if err != nil {
		panic(err)
	}
	return r
}

func pickCells(s *schema.Schema, cells []any, mapping []int) []any {
	out := make([]any, len(mapping))
	for i, src := range mapping {
		out[i] = s.CopyCell(src, cells[src])
	}
	return out
}

func pickPtrs(ptrs []any, mapping []int) []any {
	out := make([]any, len(mapping))
	for i, src := range mapping {
		out[i] = ptrs[src]
	}
	return out
}
