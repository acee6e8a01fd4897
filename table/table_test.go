package table_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dot5enko/typed-table/schema"
	"github.com/dot5enko/typed-table/table"
)

func TestTableEmplaceBack(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)
	require.Equal(t, 0, tbl.Size())

	// insert a tuple
	require.NoError(t, tbl.AppendValues(1, 2.5, newCustom(3)))
	require.Equal(t, 1, tbl.Size())

	testRow0 := func() {
		row := tbl.Row(0)
		assert.True(t, row.Equal(row))
		assert.True(t, row.EqualValues(1, 2.5, newCustom(3)))
		assert.True(t, row.Equal(row.Copy()))
	}

	testRow0()

	// insert a row
	expectedRow1 := table.MustNewRow(f.s, 2, 3.5, newCustom(4))
	require.NoError(t, tbl.Append(expectedRow1))
	require.Equal(t, 2, tbl.Size())

	testRow1 := func() {
		row := tbl.Row(1)
		assert.True(t, row.Equal(row))
		assert.True(t, row.Equal(expectedRow1))
		assert.True(t, row.Equal(row.Copy()))
	}

	testRow0()
	testRow1()

	// insert a row view over external values
	a := int64(3)
	b := 4.5
	c := newCustom(5)
	expectedRow2 := table.MustViewOf(f.s, &a, &b, &c)
	require.NoError(t, tbl.Append(expectedRow2))
	require.Equal(t, 3, tbl.Size())

	testRow0()
	testRow1()

	{
		row := tbl.Row(2)
		assert.True(t, row.Equal(row))
		assert.True(t, row.Equal(expectedRow2))
		assert.True(t, row.Equal(row.Copy()))

		// the table copied the view's values
		a = 42
		assert.Equal(t, int64(3), table.Get(tbl.Row(2), f.a))
	}

	// the documented scenario: narrow a stored row, reordered
	sub, err := tbl.Row(0).Subset(f.b.Col(), f.a.Col())
	require.NoError(t, err)
	assert.True(t, sub.EqualValues(2.5, 1))
}

func TestTableRowIter(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)

	a := int64(0)
	b := 1.5
	c := newCustom(2)
	for range 64 {
		a++
		b++
		c = c.next()
		require.NoError(t, tbl.AppendValues(a, b, c))
	}
	require.Equal(t, 64, tbl.Size())

	expectedA := int64(0)
	expectedB := 1.5
	expectedC := newCustom(2)
	count := 0
	for row := range tbl.Rows() {
		expectedA++
		expectedB++
		expectedC = expectedC.next()
		assert.Equal(t, expectedA, table.Get(row, f.a))
		assert.Equal(t, expectedB, table.Get(row, f.b))
		assert.Equal(t, expectedC, table.Get(row, f.c))
		count++
	}
	assert.Equal(t, 64, count)

	// the sequence restarts from the top
	count = 0
	for row := range tbl.Rows() {
		if count == 0 {
			assert.Equal(t, int64(1), table.Get(row, f.a))
		}
		count++
	}
	assert.Equal(t, 64, count)
}

func TestTableRowsAliasStorage(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)
	require.NoError(t, tbl.AppendValues(1, 2.5, newCustom(3)))

	// writing through the view mutates the stored row
	row := tbl.Row(0)
	table.Set(row, f.a, 10)
	assert.Equal(t, int64(10), table.Get(tbl.Row(0), f.a))

	// two views of the same row report the same addresses
	again := tbl.Row(0)
	assert.Same(t, table.Ref(row, f.c), table.Ref(again, f.c))
}

func TestTableAppendAllOrNothing(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)

	assert.ErrorIs(t, tbl.AppendValues(1, 2.5), schema.ErrArity)
	assert.Equal(t, 0, tbl.Size())

	assert.ErrorIs(t, tbl.AppendValues(1, "nope", newCustom(3)), schema.ErrFieldType)
	assert.Equal(t, 0, tbl.Size())

	require.NoError(t, tbl.AppendValues(1, 2.5, newCustom(3)))

	// a failed append must not disturb committed rows
	assert.ErrorIs(t, tbl.AppendValues(2, newCustom(4), 3.5), schema.ErrFieldType)
	require.Equal(t, 1, tbl.Size())
	assert.True(t, tbl.Row(0).EqualValues(1, 2.5, newCustom(3)))

	require.NoError(t, tbl.AppendValues(2, 3.5, newCustom(4)))
	assert.Equal(t, 2, tbl.Size())
}

func TestTableAppendAlignsByName(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)

	bld := schema.New("cba")
	schema.Add[customObject](bld, "c")
	schema.Add[float64](bld, "b")
	schema.Add[int64](bld, "a")
	reordered := bld.MustBuild()

	src := table.MustNewRow(reordered, newCustom(3), 2.5, 1)
	require.NoError(t, tbl.Append(src))

	row := tbl.Row(0)
	assert.Equal(t, int64(1), table.Get(row, f.a))
	assert.Equal(t, 2.5, table.Get(row, f.b))
	assert.Equal(t, newCustom(3), table.Get(row, f.c))

	// a source missing one of the table's fields is rejected
	other := schema.New("other")
	schema.Add[int64](other, "a")
	schema.Add[float64](other, "b")
	schema.Add[customObject](other, "x")
	stray := table.MustNewRow(other.MustBuild(), 1, 2.5, newCustom(3))
	assert.ErrorIs(t, tbl.Append(stray), schema.ErrUnknownField)
	assert.Equal(t, 1, tbl.Size())
}

func TestTableRowBounds(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)
	require.NoError(t, tbl.AppendValues(1, 2.5, newCustom(3)))

	assert.Panics(t, func() { tbl.Row(-1) })
	assert.Panics(t, func() { tbl.Row(1) })

	assert.NoError(t, tbl.IsValidRow(0))
	assert.ErrorIs(t, tbl.IsValidRow(1), table.ErrRowRange)
}

func TestTableRoundTrip(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)
	for i := range 8 {
		require.NoError(t, tbl.AppendValues(i, float64(i)+0.5, newCustom(i)))
	}

	for row := range tbl.Rows() {
		cp := row.Copy()
		assert.True(t, cp.Equal(row))

		// mutating the copy never changes the stored row
		table.Set(cp, f.a, -1)
		assert.NotEqual(t, int64(-1), table.Get(row, f.a))
	}
}

func TestTableObserver(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)

	var seen []int
	tbl.AddObserver(observerFunc(func(idx int) { seen = append(seen, idx) }))

	require.NoError(t, tbl.AppendValues(1, 2.5, newCustom(3)))
	require.NoError(t, tbl.AppendValues(2, 3.5, newCustom(4)))

	// a failed append commits nothing and must not notify
	_ = tbl.AppendValues(1, 2.5)

	assert.Equal(t, []int{0, 1}, seen)
}

type observerFunc func(index int)

func (o observerFunc) OnAppend(_ uuid.UUID, index int) {
	o(index)
}

func TestTableConcurrentReaders(t *testing.T) {
	f := abcSchema(t)
	tbl := table.NewTable(f.s)

	want := int64(0)
	for i := range 128 {
		require.NoError(t, tbl.AppendValues(i, float64(i), newCustom(i)))
		want += int64(i)
	}

	// many views may alias the same storage for reads at once
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			got := int64(0)
			for row := range tbl.Rows() {
				got += table.Get(row, f.a)
			}
			if got != want {
				t.Errorf("reader saw %d, want %d", got, want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
