package kv

import (
	"errors"
)

var (
	// ErrClosed indicates that the root store or the map handle was closed
	ErrClosed = errors.New("store was closed")
	// ErrHandleOpen indicates that a map cannot be removed while a handle
	// to it is still open
	ErrHandleOpen = errors.New("map has open handles")
	// ErrReadOnly indicates an attempt to write through a read-only cursor
	ErrReadOnly = errors.New("cursor is read-only")
	// ErrKeyRequired indicates that a key was nil or empty
	ErrKeyRequired = errors.New("key required")
	// ErrNoCurrentRecord indicates that PutCurrent was called on a cursor
	// that is not positioned on a record
	ErrNoCurrentRecord = errors.New("cursor is not positioned on a record")
)

// Status reports the expected outcome of an engine operation.
// Expected outcomes such as a missing key are never reported as
// errors. Errors are reserved for engine failures.
type Status int

const (
	// StatusOK means the operation did what was asked
	StatusOK Status = iota
	// StatusNotFound means the key or map does not exist
	StatusNotFound
	// StatusKeyExists means a no-overwrite write found the key present
	StatusKeyExists
	// StatusMapExists means an exclusive create found the map present
	StatusMapExists
)

func (status Status) String() string {
	switch status {
	case StatusOK:
		return "OK"
	case StatusNotFound:
		return "NotFound"
	case StatusKeyExists:
		return "KeyExists"
	case StatusMapExists:
		return "MapExists"
	}

	return "Unknown"
}

// PluginOptions is a free-form set of options passed to
// a plugin when it creates a root store
type PluginOptions map[string]interface{}

// Plugin represents a kv storage plugin
type Plugin interface {
	// Name returns the name of the storage plugin
	Name() string
	// NewRootStore returns an instance of the plugin store
	NewRootStore(options PluginOptions) (RootStore, error)
	// NewTempRootStore returns an instance of the plugin store
	// initialized with some sane defaults. It is meant for
	// tests that need an initialized instance of the plugin's
	// store without knowing how to initialize it
	NewTempRootStore() (RootStore, error)
}

// OpenOptions controls how RootStore.Open treats a
// missing or existing map
type OpenOptions struct {
	// Create creates the map if it does not exist
	Create bool
	// Exclusive makes Open report StatusMapExists if the
	// map already exists. It only has meaning with Create.
	Exclusive bool
}

// RootStore is the parent store from which all maps are descended
type RootStore interface {
	// Maps lists the names of all maps in this root store.
	// Results must be in ascending lexicographical order.
	Maps() ([]string, error)
	// Open returns a handle for the named map. With Create and
	// Exclusive set it returns StatusMapExists if the map already
	// exists. Without Create it returns StatusNotFound if the map
	// doesn't exist. The handle must be closed by the caller.
	Open(name string, options OpenOptions) (Map, Status, error)
	// Remove deletes the named map and all its records. It returns
	// StatusNotFound if the map doesn't exist and ErrHandleOpen if
	// any handle to the map has not been closed yet.
	Remove(name string) (Status, error)
	// Sync flushes any buffered writes to durable storage
	Sync() error
	// Close closes the store. Operations on handles descended from
	// this store that start after Close returns fail with ErrClosed.
	Close() error
	// Delete closes then deletes this store and all its contents.
	Delete() error
}

// Map is an open handle to a named map. Handles may be used
// concurrently by multiple goroutines, but Close must not be
// called concurrently with any other method.
type Map interface {
	// Name returns the name of the map
	Name() string
	// Get reads the value for key. It returns StatusNotFound
	// if the key doesn't exist. Reads observe committed data only.
	Get(key []byte) ([]byte, Status, error)
	// Put writes the key, overwriting any existing value
	Put(key, value []byte) error
	// PutNoOverwrite writes the key only if it does not exist yet.
	// It returns StatusKeyExists otherwise.
	PutNoOverwrite(key, value []byte) (Status, error)
	// Delete deletes the key. It returns StatusNotFound if the
	// key doesn't exist.
	Delete(key []byte) (Status, error)
	// Cursor returns a read-only cursor over a consistent
	// view of the map. The cursor must be closed.
	Cursor() (Cursor, error)
	// Begin starts a read-write transaction on this map.
	// The transaction must be committed or rolled back.
	Begin() (Transaction, error)
	// Close closes the handle
	Close() error
}

// Transaction is a read-write transaction on a single map. Its
// writes become visible all at once on Commit or not at all.
// It must only be used by one goroutine at a time.
type Transaction interface {
	// Cursor returns a cursor that reads the transaction's own
	// writes and can overwrite the record it is positioned on.
	Cursor() (Cursor, error)
	// PutNoOverwrite writes the key only if it does not exist yet
	// in the transaction's view. It returns StatusKeyExists otherwise.
	PutNoOverwrite(key, value []byte) (Status, error)
	// Commit commits the transaction
	Commit() error
	// Rollback rolls back the transaction. Calling Rollback
	// after Commit has no effect.
	Rollback() error
}

// Cursor iterates over the keys of a map in byte-lexicographic
// order. Positioning methods return a nil key when there is no
// such record. Keys are never empty so a nil key is unambiguous.
// It must only be used by one goroutine at a time.
type Cursor interface {
	// Seek moves to the smallest key >= seek. An empty
	// seek key moves to the first key.
	Seek(seek []byte) (key []byte, value []byte)
	// First moves to the first key
	First() (key []byte, value []byte)
	// Last moves to the last key
	Last() (key []byte, value []byte)
	// Next moves to the next key
	Next() (key []byte, value []byte)
	// Prev moves to the previous key
	Prev() (key []byte, value []byte)
	// PutCurrent overwrites the value of the record the cursor
	// is positioned on. Read-only cursors return ErrReadOnly.
	PutCurrent(value []byte) error
	// Error returns the error, if any, that stopped the cursor
	Error() error
	// Close releases the cursor
	Close() error
}
