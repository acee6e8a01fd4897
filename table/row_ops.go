package table

import (
	"fmt"
	"strings"

	"github.com/dot5enko/typed-table/schema"
)

// Rowlike is the capability set shared by the owning Row and the aliasing
// RowView: a schema and, per field, the address of the live value. The
// structural operators and the accessors below are written once against it
// and preserve the variant they were given.
type Rowlike interface {
	Schema() *schema.Schema
	// FieldPtr returns the boxed address of field i's live value.
	FieldPtr(i int) any
}

// Ref returns the address of the field's stored value. For a Row that is
// the row's own cell, for a RowView the externally owned value it aliases.
// A handle declared for the row's schema resolves as a plain index; a
// handle from a related schema falls back to one name lookup and panics if
// the name is absent, since that is a miswired call site, not data.
func Ref[T any](r Rowlike, f schema.Field[T]) *T {
	i := f.Index()
	if f.Schema() != r.Schema() {
		var ok bool
		i, ok = r.Schema().IndexOf(f.Name())
		if !ok {
			panic(fmt.Sprintf("table: no field %q in %s", f.Name(), r.Schema()))
		}
	}
	return r.FieldPtr(i).(*T)
}

// Get reads the field's current value.
func Get[T any](r Rowlike, f schema.Field[T]) T {
	return *Ref(r, f)
}

// Set writes the field's value in place. Through a RowView this mutates
// whatever the view aliases.
func Set[T any](r Rowlike, f schema.Field[T], v T) {
	*Ref(r, f) = v
}

// valuesOf reads the row out as a positional tuple of value copies.
func valuesOf(r Rowlike) []any {
	s := r.Schema()
	out := make([]any, s.NumFields())
	for i := range out {
		out[i] = s.Load(i, r.FieldPtr(i))
	}
	return out
}

func refsOf(r Rowlike) []any {
	s := r.Schema()
	out := make([]any, s.NumFields())
	for i := range out {
		out[i] = r.FieldPtr(i)
	}
	return out
}

// assignValues writes a positional tuple through the row, field by field in
// schema order. The whole tuple is coerced before anything is written, so a
// bad tuple leaves the target untouched.
func assignValues(dst Rowlike, values []any) error {
	s := dst.Schema()
	if len(values) != s.NumFields() {
		return fmt.Errorf("%d values into %d fields: %w",
			len(values), s.NumFields(), schema.ErrArity)
	}
	coerced := make([]any, len(values))
	for i, v := range values {
		cv, err := s.Coerce(i, v)
		if err != nil {
			return err
		}
		coerced[i] = cv
	}
	for i, cv := range coerced {
		if err := s.Store(i, dst.FieldPtr(i), cv); err != nil {
			return err
		}
	}
	return nil
}

// assignRowInto copies src's values into dst's storage. Identical schemas
// copy positionally; schemas that only differ in declaration order are
// aligned by field name.
func assignRowInto(dst, src Rowlike) error {
	ds, ss := dst.Schema(), src.Schema()
	if ds.NumFields() != ss.NumFields() {
		return fmt.Errorf("%d fields into %d fields: %w",
			ss.NumFields(), ds.NumFields(), schema.ErrArity)
	}
	if ds == ss {
		for i := 0; i < ds.NumFields(); i++ {
			if err := ds.Store(i, dst.FieldPtr(i), ss.Load(i, src.FieldPtr(i))); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < ds.NumFields(); i++ {
		name := ds.FieldName(i)
		j, ok := ss.IndexOf(name)
		if !ok {
			return fmt.Errorf("source has no field %q: %w", name, schema.ErrUnknownField)
		}
		if err := ds.Store(i, dst.FieldPtr(i), ss.Load(j, src.FieldPtr(j))); err != nil {
			return err
		}
	}
	return nil
}

// rowsEqual compares two row-like values field by field. Fields are matched
// by name, so two rows over the same (name, type) set compare equal even
// when their declaration orders differ.
func rowsEqual(a, b Rowlike) bool {
	as, bs := a.Schema(), b.Schema()
	if as == bs {
		for i := 0; i < as.NumFields(); i++ {
			if !as.EqualAt(i, a.FieldPtr(i), b.FieldPtr(i)) {
				return false
			}
		}
		return true
	}
	if !as.SameFields(bs) {
		return false
	}
	for i := 0; i < as.NumFields(); i++ {
		j, _ := bs.IndexOf(as.FieldName(i))
		if !as.EqualAt(i, a.FieldPtr(i), b.FieldPtr(j)) {
			return false
		}
	}
	return true
}

// equalTuple compares a row against a positional tuple in schema order.
func equalTuple(r Rowlike, values []any) bool {
	s := r.Schema()
	if len(values) != s.NumFields() {
		return false
	}
	for i, v := range values {
		cell, err := s.NewCell(i, v)
		if err != nil {
			return false
		}
		if !s.EqualAt(i, r.FieldPtr(i), cell) {
			return false
		}
	}
	return true
}

// scanInto copies the row's current values into caller-owned destinations,
// one typed pointer per field in schema order. This is the by-value half of
// structured decomposition; Refs is the by-reference half.
func scanInto(r Rowlike, dsts []any) error {
	s := r.Schema()
	if len(dsts) != s.NumFields() {
		return fmt.Errorf("%d scan targets for %d fields: %w",
			len(dsts), s.NumFields(), schema.ErrArity)
	}
	for i, d := range dsts {
		if err := s.CheckPtr(i, d); err != nil {
			return fmt.Errorf("scan target %d: %w", i, err)
		}
	}
	for i, d := range dsts {
		if err := s.Store(i, d, s.Load(i, r.FieldPtr(i))); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(kind string, r Rowlike) string {
	s := r.Schema()
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('{')
	for i := 0; i < s.NumFields(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", s.FieldName(i), s.Load(i, r.FieldPtr(i)))
	}
	b.WriteByte('}')
	return b.String()
}
