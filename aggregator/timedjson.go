package aggregator

import (
	"encoding/json"
	"sync"
	"time"
)

// TimedJSONAggregator batches dict-shaped records into time windows,
// flushing each completed window as a ".json" record into an underlying
// TarAggregator. A window is closed lazily, by the first AddData call made
// once it is maxDuration old, and its recorded end time is that call's
// time, so a flushed window can span more than maxDuration. All mutating
// operations serialise under an exclusive lock.
type TimedJSONAggregator struct {
	mu sync.Mutex

	maxDuration time.Duration
	tar         *TarAggregator
	sensorName  string

	dataset    []interface{}
	windowOpen bool
	windowFrom time.Time

	// now is overridable in tests for deterministic window cutover.
	now func() time.Time
}

// NewTimedJSONAggregator returns a TimedJSONAggregator that flushes
// windows into tarAggregator once they reach maxDuration, tagging each
// emitted record with sensorName.
func NewTimedJSONAggregator(maxDuration time.Duration, tarAggregator *TarAggregator, sensorName string) *TimedJSONAggregator {
	return &TimedJSONAggregator{
		maxDuration: maxDuration,
		tar:         tarAggregator,
		sensorName:  sensorName,
		now:         time.Now,
	}
}

// AddData flushes the current window to the tar aggregator if it is at
// least maxDuration old, then appends record to the (possibly fresh) window.
func (a *TimedJSONAggregator) AddData(record interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now().UTC()
	if a.windowOpen && now.Sub(a.windowFrom) >= a.maxDuration {
		if err := a.finalizeWindowLocked(now); err != nil {
			return err
		}
	}
	if !a.windowOpen {
		a.windowOpen = true
		a.windowFrom = now
	}
	a.dataset = append(a.dataset, record)
	return nil
}

// Finalize forcibly closes the current window, flushing it to the tar
// aggregator if it holds any records. Calling it on an empty window is a
// no-op.
func (a *TimedJSONAggregator) Finalize() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.windowOpen || len(a.dataset) == 0 {
		return nil
	}
	return a.finalizeWindowLocked(a.now().UTC())
}

func (a *TimedJSONAggregator) finalizeWindowLocked(to time.Time) error {
	if len(a.dataset) == 0 {
		a.windowOpen = false
		return nil
	}
	payload, err := json.Marshal(a.dataset)
	if err != nil {
		return err
	}
	if err := a.tar.AddRecord(a.sensorName, a.windowFrom, to, ".json", payload); err != nil {
		return err
	}
	a.dataset = nil
	a.windowOpen = false
	return nil
}

// Len returns the number of records queued in the current, not-yet-flushed
// window.
func (a *TimedJSONAggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.dataset)
}
