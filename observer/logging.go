package observer

import (
	"go.uber.org/zap"

	"github.com/transitforge/meridian/ids"
)

// LoggingObserver emits one structured log line per tick-end and per
// snapshot, generalizing the teacher's end-of-run console report
// (sim/report.go PrintConsoleReport) into a per-tick observer.
type LoggingObserver struct {
	Base
	Log *zap.SugaredLogger
}

// NewLoggingObserver builds a LoggingObserver around an existing logger.
func NewLoggingObserver(log *zap.SugaredLogger) *LoggingObserver {
	return &LoggingObserver{Log: log}
}

func (o *LoggingObserver) OnTickEnd(tick ids.Tick, wokenCount int) error {
	if o.Log == nil {
		return nil
	}
	o.Log.Debugw("tick end", "tick", uint64(tick), "woken", wokenCount)
	return nil
}

func (o *LoggingObserver) OnSnapshot(tick ids.Tick, unixTimeSecs int64, mobility MobilityView, store AgentStoreView) error {
	if o.Log == nil {
		return nil
	}
	o.Log.Infow("snapshot", "tick", uint64(tick), "unix_time", unixTimeSecs, "agents", store.Len())
	return nil
}

func (o *LoggingObserver) OnSimEnd(finalTick ids.Tick) error {
	if o.Log == nil {
		return nil
	}
	o.Log.Infow("simulation end", "final_tick", uint64(finalTick))
	return nil
}
