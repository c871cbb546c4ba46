package stats

import (
	"sort"
	"sync"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// Recorder tracks call counts and a moving
// average of latency for each operation.
type Recorder struct {
	mu         sync.Mutex
	window     int
	operations map[string]*operation
}

type operation struct {
	latency *movingaverage.MovingAverage
	calls   uint64
	errors  uint64
	max     time.Duration
}

// Snapshot is the state of one
// operation at a point in time
type Snapshot struct {
	Operation string
	Calls     uint64
	Errors    uint64
	// Average is the mean latency over the
	// last window calls
	Average time.Duration
	// Max is the largest latency seen since
	// the last Reset
	Max time.Duration
}

// NewRecorder creates a recorder that averages
// latency over the last window calls
func NewRecorder(window int) *Recorder {
	if window <= 0 {
		window = 1
	}

	return &Recorder{
		window:     window,
		operations: map[string]*operation{},
	}
}

// Observe records one call to an operation
func (recorder *Recorder) Observe(name string, latency time.Duration, failed bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	op, ok := recorder.operations[name]

	if !ok {
		op = &operation{latency: movingaverage.New(recorder.window)}
		recorder.operations[name] = op
	}

	op.latency.Add(float64(latency.Nanoseconds()))
	op.calls++

	if failed {
		op.errors++
	}

	if latency > op.max {
		op.max = latency
	}
}

// Snapshot returns the state of every operation
// observed so far, sorted by operation name
func (recorder *Recorder) Snapshot() []Snapshot {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(recorder.operations))

	for name, op := range recorder.operations {
		snapshots = append(snapshots, Snapshot{
			Operation: name,
			Calls:     op.calls,
			Errors:    op.errors,
			Average:   time.Duration(op.latency.Avg()),
			Max:       op.max,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Operation < snapshots[j].Operation
	})

	return snapshots
}

// Reset forgets the peak latency of every operation.
// Counters and averages are kept.
func (recorder *Recorder) Reset() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	for _, op := range recorder.operations {
		op.max = 0
	}
}
