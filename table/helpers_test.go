package table_test

import (
	"testing"

	"github.com/dot5enko/typed-table/schema"
)

// customObject is a non-fundamental field type with no meaningful zero
// value; every instance is built through newCustom.
type customObject struct {
	a int
	b float32
}

func newCustom(a int) customObject {
	return customObject{a: a, b: float32(a) / 2}
}

func (c customObject) next() customObject {
	return customObject{a: c.a + 1, b: c.b + 1}
}

type abcFields struct {
	s *schema.Schema
	a schema.Field[int64]
	b schema.Field[float64]
	c schema.Field[customObject]
}

// abcSchema declares the {a int64, b float64, c customObject} schema the
// bulk of these tests run against.
func abcSchema(t testing.TB) abcFields {
	t.Helper()
	bld := schema.New("abc")
	a := schema.Add[int64](bld, "a")
	b := schema.Add[float64](bld, "b")
	c := schema.Add[customObject](bld, "c")
	return abcFields{s: bld.MustBuild(), a: a, b: b, c: c}
}
