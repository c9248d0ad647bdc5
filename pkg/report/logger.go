package report

import (
	"github.com/danl5/govote/pkg/log"
	"github.com/danl5/govote/pkg/model"
)

// NewLogReporter returns a reporter logging every snapshot at info level.
func NewLogReporter(logger log.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

type LogReporter struct {
	logger log.Logger
}

func (l *LogReporter) Report(s model.TallySnapshot) error {
	kv := []any{"run", s.RunID, "station", s.StationID, "served", s.Served, "elapsed", s.Elapsed}
	for _, c := range candidates(s.Tally) {
		kv = append(kv, c, s.Tally[c])
	}
	l.logger.Info("tally", kv...)
	return nil
}
