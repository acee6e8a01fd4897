package table

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Observer is notified after a row append has fully committed (all cells
// constructed, row count advanced). Observers observe, they cannot veto.
type Observer interface {
	OnAppend(table uuid.UUID, index int)
}

// LogObserver logs committed appends through zerolog.
type LogObserver struct {
	log zerolog.Logger
}

func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnAppend(table uuid.UUID, index int) {
	o.log.Debug().
		Str("table", table.String()).
		Int("row", index).
		Msg("row appended")
}
