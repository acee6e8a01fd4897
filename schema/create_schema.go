package schema

import "reflect"

// Builder accumulates field declarations for one schema. Fields are added
// with the package-level Add function, which hands back the typed handle
// used for every later access. Build validates the whole declaration at
// once, so a bad schema fails before any row or table exists.
type Builder struct {
	target *Schema
	fields []fieldInfo
}

func New(name string) *Builder {
	return &Builder{target: &Schema{Name: name}}
}

// Add declares the next field of the schema under construction and returns
// its typed handle. The element type T is captured here: the cell factory,
// the column factory, value coercion and equality for this field are all
// bound to the concrete T, so the row and table layers never need to know
// element types at all.
func Add[T any](b *Builder, name string) Field[T] {
	index := len(b.fields)
	b.fields = append(b.fields, fieldInfo{
		name: name,
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
		ops:  opsFor[T](),
	})
	return Field[T]{schema: b.target, name: name, index: index}
}

// Build finalizes the declaration. Duplicate or empty names are reported
// here; handles returned by Add become live once Build succeeds.
func (b *Builder) Build() (*Schema, error) {
	built, err := finalize(b.target.Name, b.fields)
	if err != nil {
		return nil, err
	}
	// Handles returned by Add point at b.target; fill it in place so they
	// resolve against the built schema.
	*b.target = *built
	return b.target, nil
}

func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
