package tracking

import "time"

// TimedExecution measures one mesh and records it on completion.
type TimedExecution struct {
	tracker   *Tracker
	startTime time.Time
}

// Start creates a new TimedExecution. A nil tracker makes Track a no-op.
func Start(tracker *Tracker) *TimedExecution {
	return &TimedExecution{
		tracker:   tracker,
		startTime: time.Now(),
	}
}

// Elapsed returns the time since Start.
func (te *TimedExecution) Elapsed() time.Duration {
	return time.Since(te.startTime)
}

// Track records r with the elapsed duration.
func (te *TimedExecution) Track(r Record) error {
	if te.tracker == nil {
		return nil
	}
	r.DurationMs = te.Elapsed().Milliseconds()
	return te.tracker.Record(r)
}
