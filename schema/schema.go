package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Schema is an ordered list of (name, type) field bindings. It is immutable
// once built: every Row, RowView and Table is constructed against one Schema
// and keeps a reference to it. Field order matters for positional operations
// (tuple conversion, concatenation), lookup is by name.
type Schema struct {
	Name string
	Uid  uuid.UUID

	fields []fieldInfo
	index  map[string]int
}

type fieldInfo struct {
	name string
	typ  reflect.Type
	ops  fieldOps
}

func (s *Schema) NumFields() int {
	return len(s.fields)
}

func (s *Schema) FieldName(i int) string {
	return s.fields[i].name
}

func (s *Schema) FieldType(i int) reflect.Type {
	return s.fields[i].typ
}

// IndexOf resolves a field name to its position. This is the only place a
// name is ever matched against the schema; callers cache the result in a
// Field handle so per-access resolution is a plain index.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// FieldNames returns the names in declaration order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// SameFields reports whether both schemas bind the same set of names to the
// same types, regardless of order. Schemas related this way are comparable
// and assignable field-by-field.
func (s *Schema) SameFields(other *Schema) bool {
	if s == other {
		return true
	}
	if len(s.fields) != len(other.fields) {
		return false
	}
	for _, f := range s.fields {
		j, ok := other.index[f.name]
		if !ok || other.fields[j].typ != f.typ {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema %q {", s.Name)
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", f.name, f.typ)
	}
	b.WriteByte('}')
	return b.String()
}

// finalize validates the field list and builds the lookup index.
// Every schema, built or derived, goes through here.
func finalize(name string, fields []fieldInfo) (*Schema, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("field %d: %w", i, ErrEmptyName)
		}
		if _, exists := index[f.name]; exists {
			return nil, fmt.Errorf("field %q: %w", f.name, ErrDuplicateField)
		}
		index[f.name] = i
	}
	return &Schema{
		Name:   name,
		Uid:    uuid.New(),
		fields: fields,
		index:  index,
	}, nil
}
