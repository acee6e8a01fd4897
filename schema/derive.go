package schema

import "fmt"

// Schema derivation. Subset, Drop and Relabel over rows and table views all
// reduce to deriving a new schema plus a mapping back into the source
// schema's field positions; the derivations below are the single place
// where unknown names, duplicate selections and name collisions are caught.

// Rename is one old-name to new-name binding for Relabel.
type Rename struct {
	From string
	To   string
}

// Project derives the schema over exactly the requested fields, in the
// requested order. The returned mapping gives, per derived field, its
// position in the source schema. Unknown fields and duplicate selections
// are errors.
func (s *Schema) Project(cols ...Col) (*Schema, []int, error) {
	fields := make([]fieldInfo, 0, len(cols))
	mapping := make([]int, 0, len(cols))
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		i, ok := s.index[c.name]
		if !ok {
			return nil, nil, fmt.Errorf("%s: %q: %w", s.Name, c.name, ErrUnknownField)
		}
		if seen[c.name] {
			return nil, nil, fmt.Errorf("%s: selected twice: %q: %w", s.Name, c.name, ErrDuplicateField)
		}
		seen[c.name] = true
		fields = append(fields, s.fields[i])
		mapping = append(mapping, i)
	}
	derived, err := finalize(s.Name, fields)
	if err != nil {
		return nil, nil, err
	}
	return derived, mapping, nil
}

// Without derives the schema with the named fields removed, keeping the
// relative order of the rest.
func (s *Schema) Without(cols ...Col) (*Schema, []int, error) {
	dropped := make(map[string]bool, len(cols))
	for _, c := range cols {
		if _, ok := s.index[c.name]; !ok {
			return nil, nil, fmt.Errorf("%s: %q: %w", s.Name, c.name, ErrUnknownField)
		}
		if dropped[c.name] {
			return nil, nil, fmt.Errorf("%s: dropped twice: %q: %w", s.Name, c.name, ErrDuplicateField)
		}
		dropped[c.name] = true
	}
	fields := make([]fieldInfo, 0, len(s.fields)-len(cols))
	mapping := make([]int, 0, len(s.fields)-len(cols))
	for i, f := range s.fields {
		if dropped[f.name] {
			continue
		}
		fields = append(fields, f)
		mapping = append(mapping, i)
	}
	derived, err := finalize(s.Name, fields)
	if err != nil {
		return nil, nil, err
	}
	return derived, mapping, nil
}

// Relabel derives a schema with identical field order and types but with
// the given names replaced. Fields not mentioned keep their name. The
// result must still have pairwise distinct names.
func (s *Schema) Relabel(renames ...Rename) (*Schema, error) {
	newName := make(map[string]string, len(renames))
	for _, r := range renames {
		if _, ok := s.index[r.From]; !ok {
			return nil, fmt.Errorf("%s: %q: %w", s.Name, r.From, ErrUnknownField)
		}
		if _, dup := newName[r.From]; dup {
			return nil, fmt.Errorf("%s: relabeled twice: %q: %w", s.Name, r.From, ErrDuplicateField)
		}
		newName[r.From] = r.To
	}
	fields := make([]fieldInfo, len(s.fields))
	copy(fields, s.fields)
	for i := range fields {
		if to, ok := newName[fields[i].name]; ok {
			fields[i].name = to
		}
	}
	return finalize(s.Name, fields)
}

// Concat derives the ordered concatenation of the given schemas. A field
// name occurring in more than one input is an error, nothing is silently
// dropped or preferred.
func Concat(name string, schemas ...*Schema) (*Schema, error) {
	total := 0
	for _, s := range schemas {
		total += len(s.fields)
	}
	fields := make([]fieldInfo, 0, total)
	for _, s := range schemas {
		fields = append(fields, s.fields...)
	}
	return finalize(name, fields)
}
