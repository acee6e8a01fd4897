package schema

import (
	"fmt"
	"reflect"
)

// Field is a typed handle to one schema field. A handle is obtained when the
// field is declared (Add) or resolved once against an existing schema
// (Lookup); after that every access through it is a plain index, no string
// comparison and no map probe.
//
// The type parameter pins the element type at compile time: a Field[int64]
// can only ever read or write int64 cells.
type Field[T any] struct {
	schema *Schema
	name   string
	index  int
}

func (f Field[T]) Name() string { return f.name }

func (f Field[T]) Index() int { return f.index }

func (f Field[T]) Schema() *Schema { return f.schema }

// Col erases the element type for use in operator argument lists
// (Project, Without, Subset, Drop) where fields of mixed types are passed
// together.
func (f Field[T]) Col() Col {
	return Col{name: f.name, index: f.index, schema: f.schema}
}

// Col is a type-erased field handle.
type Col struct {
	schema *Schema
	name   string
	index  int
}

func (c Col) Name() string { return c.name }

func (c Col) Index() int { return c.index }

// Lookup resolves a name against an already-built schema into a typed
// handle. The resolution cost is paid here, once; an unknown name or a
// mismatched element type is reported immediately, never deferred to row
// access.
func Lookup[T any](s *Schema, name string) (Field[T], error) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, fmt.Errorf("%s: %q: %w", s.Name, name, ErrUnknownField)
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if got := s.fields[i].typ; got != want {
		return Field[T]{}, fmt.Errorf("%s: %q is %s, not %s: %w",
			s.Name, name, got, want, ErrFieldType)
	}
	return Field[T]{schema: s, name: name, index: i}, nil
}

// MustLookup is Lookup for declaration sites, panicking on failure.
func MustLookup[T any](s *Schema, name string) Field[T] {
	f, err := Lookup[T](s, name)
	if err != nil {
		panic(err)
	}
	return f
}
