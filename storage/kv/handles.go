package kv

import "sync"

// HandleCounter tracks how many handles are open for each
// map name. Drivers use it to refuse removal of a map that
// still has open handles.
type HandleCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

// Acquire records a newly opened handle for name
func (counter *HandleCounter) Acquire(name string) {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	if counter.counts == nil {
		counter.counts = map[string]int{}
	}

	counter.counts[name]++
}

// Release records that a handle for name was closed
func (counter *HandleCounter) Release(name string) {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	if counter.counts[name] <= 1 {
		delete(counter.counts, name)

		return
	}

	counter.counts[name]--
}

// Open returns true if at least one handle for name is open
func (counter *HandleCounter) Open(name string) bool {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	return counter.counts[name] > 0
}
