package mapkeeper

import (
	"sort"
	"sync"

	"github.com/jrife/mapkeeper/storage/kv"
)

// registry maps names to open map handles.
//
// mu guards two things at once:
//   1) the handles map itself
//   2) the right to close a handle
// Handles are safe for concurrent use, so holders of the shared lock
// may use any handle they look up. Only holders of the exclusive lock
// may add or remove entries or close a handle. A handle must not be
// used after the shared lock it was looked up under is released.
type registry struct {
	mu      sync.RWMutex
	handles map[string]kv.Map
}

func newRegistry() *registry {
	return &registry{handles: map[string]kv.Map{}}
}

// shared runs fn with the handle registered under name while holding
// the shared lock. fn is not called and MapNotFound is returned if no
// such map is registered.
func (r *registry) shared(name string, fn func(m kv.Map) ResponseCode) ResponseCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.handles[name]

	if !ok {
		return MapNotFound
	}

	return fn(m)
}

// exclusive runs fn while holding the exclusive lock
func (r *registry) exclusive(fn func(handles map[string]kv.Map) ResponseCode) ResponseCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	return fn(r.handles)
}

// names lists the registered names in ascending order
func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handles))

	for name := range r.handles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
