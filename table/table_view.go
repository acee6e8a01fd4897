package table

import (
	"fmt"
	"iter"

	"github.com/dot5enko/typed-table/schema"
)

// TableView is a non-owning reinterpretation of a Table under a possibly
// relabeled or narrowed schema. It holds no column storage of its own:
// every row it produces aliases the base table's cells, so for any row
// index the view's field addresses are identical to the base's. A view
// must not outlive its table and, like RowView, is invalidated by appends.
type TableView struct {
	base    *Table
	sch     *schema.Schema
	mapping []int // view field -> base column
}

func (v *TableView) Schema() *schema.Schema { return v.sch }

// Size delegates to the underlying table's row count.
func (v *TableView) Size() int { return v.base.Size() }

// Relabel derives a view with renamed fields over the same storage. Only
// the names used to address fields change; for every row index the
// relabeled view reports the exact addresses of the base view.
func (v *TableView) Relabel(renames ...schema.Rename) (*TableView, error) {
	derived, err := v.sch.Relabel(renames...)
	if err != nil {
		return nil, err
	}
	mapping := make([]int, len(v.mapping))
	copy(mapping, v.mapping)
	return &TableView{base: v.base, sch: derived, mapping: mapping}, nil
}

// Project derives a view over the named fields in the requested order,
// the columnar counterpart of RowView.Subset.
func (v *TableView) Project(cols ...schema.Col) (*TableView, error) {
	derived, mapping, err := v.sch.Project(cols...)
	if err != nil {
		return nil, err
	}
	return &TableView{base: v.base, sch: derived, mapping: v.compose(mapping)}, nil
}

// Without derives a view with the named fields removed, the columnar
// counterpart of RowView.Drop.
func (v *TableView) Without(cols ...schema.Col) (*TableView, error) {
	derived, mapping, err := v.sch.Without(cols...)
	if err != nil {
		return nil, err
	}
	return &TableView{base: v.base, sch: derived, mapping: v.compose(mapping)}, nil
}

// compose turns a mapping into this view's schema into a mapping into the
// base table's columns, so views of views still address base storage
// directly.
func (v *TableView) compose(mapping []int) []int {
	out := make([]int, len(mapping))
	for i, m := range mapping {
		out[i] = v.mapping[m]
	}
	return out
}

// Row returns the view of row i under the view's schema, aliasing the base
// table's cells. It panics on an out-of-range index.
func (v *TableView) Row(i int) RowView {
	if err := v.base.IsValidRow(i); err != nil {
		panic(err)
	}
	ptrs := make([]any, len(v.mapping))
	for k, col := range v.mapping {
		ptrs[k] = v.base.cols[col].Ptr(i)
	}
	return RowView{sch: v.sch, ptrs: ptrs}
}

// Rows returns a lazy, restartable sequence of RowViews in index order.
func (v *TableView) Rows() iter.Seq[RowView] {
	return func(yield func(RowView) bool) {
		for i := 0; i < v.base.Size(); i++ {
			if !yield(v.Row(i)) {
				return
			}
		}
	}
}

func (v *TableView) String() string {
	return fmt.Sprintf("table_view{%s, %d rows}", v.sch, v.Size())
}
