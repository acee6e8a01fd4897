package main

import (
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"github.com/dot5enko/typed-table/logging"
	"github.com/dot5enko/typed-table/schema"
	"github.com/dot5enko/typed-table/table"
)

type health struct {
	Status string
	Score  int
}

func testCycles(n int, label string, cb func()) {

	before := time.Now()

	for range n {
		cb()
	}

	after := time.Since(before)

	perCycle := after.Nanoseconds() / int64(n)
	color.Green(" %s per cycle : %d ns", label, perCycle)
}

func main() {

	log := logging.New()

	b := schema.New("health_checks")
	createdAt := schema.Add[uint64](b, "created_at")
	value := schema.Add[float64](b, "value")
	state := schema.Add[health](b, "state")
	checks := b.MustBuild()

	log.Info().Str("schema", checks.String()).Msg("schema built")

	t := table.NewTable(checks)
	t.AddObserver(table.NewLogObserver(log))

	for i := range 64 {
		appendErr := t.AppendValues(uint64(i), float64(i)/2, health{Status: "ok", Score: i})
		if appendErr != nil {
			panic(appendErr)
		}
	}

	color.Cyan("table holds %d rows", t.Size())

	first := t.Row(0)
	spew.Dump(first.Values())

	// narrow the first row to (value, created_at), aliasing table storage
	narrowed, err := first.Subset(value.Col(), createdAt.Col())
	if err != nil {
		panic(err)
	}
	color.Yellow("narrowed: %s", narrowed)

	// rename columns on a storage-identical view of the whole table
	renamed, err := t.View().Relabel(schema.Rename{From: "created_at", To: "ts"})
	if err != nil {
		panic(err)
	}
	ts := schema.MustLookup[uint64](renamed.Schema(), "ts")

	total := uint64(0)
	for row := range renamed.Rows() {
		total += table.Get(row, ts)
	}
	color.Cyan("sum(ts) = %d", total)

	testCycles(1_000_000, "typed get", func() {
		_ = table.Get(first, state)
	})

	log.Info().Int("rows", t.Size()).Msg("done")
}
