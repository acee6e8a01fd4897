package schema

import "fmt"

// Column is one growable, contiguous array of field values. The concrete
// array is typed (a plain []T grown with append); this interface is the
// type-erased face the table layer stacks side by side, one per field.
//
// A grown cell is always constructed from a source value, never
// zero-initialized and assigned later, so no half-built cell is observable.
// Ptr exposes the live cell address for views; growing the column may
// relocate cells, which invalidates previously handed out addresses.
type Column interface {
	Len() int
	Append(v any) error
	Ptr(i int) any
	Truncate(n int)
}

type column[T any] struct {
	cells []T
}

func (c *column[T]) Len() int {
	return len(c.cells)
}

func (c *column[T]) Append(v any) error {
	cv, err := coerce[T](v)
	if err != nil {
		return err
	}
	c.cells = append(c.cells, cv)
	return nil
}

func (c *column[T]) Ptr(i int) any {
	return &c.cells[i]
}

func (c *column[T]) Truncate(n int) {
	if n < len(c.cells) {
		var zero T
		for i := n; i < len(c.cells); i++ {
			c.cells[i] = zero
		}
		c.cells = c.cells[:n]
	}
}

func (c *column[T]) String() string {
	return fmt.Sprintf("column[%d cells]", len(c.cells))
}
