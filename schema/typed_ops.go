package schema

import (
	"fmt"
	"reflect"
)

// fieldOps is the per-field dispatch table captured when the field is
// declared. All type-specific behavior lives in these closures, bound to
// the concrete element type by Add; the row and table layers only move
// opaque boxed cells around and never branch on types themselves.
type fieldOps struct {
	newColumn func() Column
	coerceVal func(v any) (any, error) // boxed T converted from v
	newCell   func(v any) (any, error) // heap cell *T constructed from v
	copyCell  func(ptr any) any        // independent *T copy of a *T
	load      func(ptr any) any        // boxed T value read through *T
	store     func(ptr, v any) error   // write coerced v through *T
	equal     func(pa, pb any) bool    // compare values through two *T
	checkPtr  func(p any) error        // validate an externally owned *T
}

func opsFor[T any]() fieldOps {
	return fieldOps{
		newColumn: func() Column { return &column[T]{} },
		coerceVal: func(v any) (any, error) {
			cv, err := coerce[T](v)
			if err != nil {
				return nil, err
			}
			return cv, nil
		},
		newCell: func(v any) (any, error) {
			cv, err := coerce[T](v)
			if err != nil {
				return nil, err
			}
			cell := new(T)
			*cell = cv
			return cell, nil
		},
		copyCell: func(ptr any) any {
			cell := new(T)
			*cell = *ptr.(*T)
			return cell
		},
		load: func(ptr any) any { return *ptr.(*T) },
		store: func(ptr, v any) error {
			cv, err := coerce[T](v)
			if err != nil {
				return err
			}
			*ptr.(*T) = cv
			return nil
		},
		equal: func(pa, pb any) bool {
			return equalValues(*pa.(*T), *pb.(*T))
		},
		checkPtr: func(p any) error {
			if _, ok := p.(*T); !ok {
				return fmt.Errorf("have %T, want %s: %w",
					p, reflect.TypeOf((*T)(nil)), ErrFieldType)
			}
			return nil
		},
	}
}

// coerce converts an incoming value to the field's element type. Exact
// matches are a single type assertion; numeric values additionally convert
// across numeric kinds, which keeps untyped constants ergonomic
// (an int literal lands in an int64 field). Anything else is a type error.
func coerce[T any](v any) (T, error) {
	if cv, ok := v.(T); ok {
		return cv, nil
	}
	var zero T
	want := reflect.TypeOf(&zero).Elem()
	rv := reflect.ValueOf(v)
	if rv.IsValid() && numericKind(rv.Kind()) && numericKind(want.Kind()) {
		return rv.Convert(want).Interface().(T), nil
	}
	return zero, fmt.Errorf("cannot use %T as %s: %w", v, want, ErrFieldType)
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// equalValues compares two field values. A type carrying its own equality
// (an Equal method) wins; comparable types use ==; everything else falls
// back to deep equality.
func equalValues[T any](a, b T) bool {
	if eq, ok := any(a).(interface{ Equal(T) bool }); ok {
		return eq.Equal(b)
	}
	if t := reflect.TypeOf(a); t != nil && t.Comparable() {
		return any(a) == any(b)
	}
	return reflect.DeepEqual(a, b)
}

// Per-field dynamic entry points used by the table package. The index has
// already been resolved through a Field handle; these are plain slice
// lookups plus one closure call.

func (s *Schema) NewColumn(i int) Column {
	return s.fields[i].ops.newColumn()
}

// Coerce converts a value to field i's element type without writing it
// anywhere, so callers can validate a whole tuple before mutating storage.
func (s *Schema) Coerce(i int, v any) (any, error) {
	cv, err := s.fields[i].ops.coerceVal(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", s.fields[i].name, err)
	}
	return cv, nil
}

func (s *Schema) NewCell(i int, v any) (any, error) {
	cell, err := s.fields[i].ops.newCell(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", s.fields[i].name, err)
	}
	return cell, nil
}

func (s *Schema) CopyCell(i int, ptr any) any {
	return s.fields[i].ops.copyCell(ptr)
}

func (s *Schema) Load(i int, ptr any) any {
	return s.fields[i].ops.load(ptr)
}

func (s *Schema) Store(i int, ptr, v any) error {
	if err := s.fields[i].ops.store(ptr, v); err != nil {
		return fmt.Errorf("field %q: %w", s.fields[i].name, err)
	}
	return nil
}

func (s *Schema) EqualAt(i int, pa, pb any) bool {
	return s.fields[i].ops.equal(pa, pb)
}

func (s *Schema) CheckPtr(i int, p any) error {
	if err := s.fields[i].ops.checkPtr(p); err != nil {
		return fmt.Errorf("field %q: %w", s.fields[i].name, err)
	}
	return nil
}
