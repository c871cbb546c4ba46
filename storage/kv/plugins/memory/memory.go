package memory

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/storage/kv/keys"
	"github.com/tidwall/btree"
)

const (
	// DriverName is the name under which this plugin is registered
	DriverName = "memory"
)

func Plugins() []kv.Plugin {
	return []kv.Plugin{
		&MemoryPlugin{},
	}
}

// MemoryPlugin creates root stores that live in memory only.
// Their contents are lost when the process exits.
type MemoryPlugin struct {
}

func (plugin *MemoryPlugin) Name() string {
	return DriverName
}

func (plugin *MemoryPlugin) NewRootStore(options kv.PluginOptions) (kv.RootStore, error) {
	return New(), nil
}

func (plugin *MemoryPlugin) NewTempRootStore() (kv.RootStore, error) {
	return New(), nil
}

type record struct {
	key   []byte
	value []byte
}

func less(a, b record) bool {
	return bytes.Compare(a.key, b.key) < 0
}

func newTree() *btree.BTreeG[record] {
	// Access is guarded by mapData.mu. The tree's own locks
	// would deadlock a transaction that writes while one of
	// its cursors holds an iterator.
	return btree.NewBTreeGOptions(less, btree.Options{NoLocks: true})
}

type mapData struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[record]
}

var _ kv.RootStore = (*MemoryRootStore)(nil)

// MemoryRootStore keeps its maps in a sorted namespace
// so that Maps() needs no extra sorting
type MemoryRootStore struct {
	mu      sync.RWMutex
	maps    *treemap.Map
	handles kv.HandleCounter
	closed  bool
}

// New creates an empty in-memory root store
func New() *MemoryRootStore {
	return &MemoryRootStore{
		maps: treemap.NewWithStringComparator(),
	}
}

func (store *MemoryRootStore) isClosed() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.closed
}

func (store *MemoryRootStore) Maps() ([]string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.closed {
		return nil, kv.ErrClosed
	}

	names := make([]string, 0, store.maps.Size())

	for _, name := range store.maps.Keys() {
		names = append(names, name.(string))
	}

	return names, nil
}

func (store *MemoryRootStore) Open(name string, options kv.OpenOptions) (kv.Map, kv.Status, error) {
	store.handles.Acquire(name)

	data, status, err := store.ensure(name, options)

	if err != nil || status != kv.StatusOK {
		store.handles.Release(name)

		return nil, status, err
	}

	return &MemoryMap{store: store, name: name, data: data}, kv.StatusOK, nil
}

func (store *MemoryRootStore) ensure(name string, options kv.OpenOptions) (*mapData, kv.Status, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.closed {
		return nil, kv.StatusOK, kv.ErrClosed
	}

	if name == "" {
		return nil, kv.StatusOK, kv.ErrKeyRequired
	}

	existing, ok := store.maps.Get(name)

	if ok {
		if options.Create && options.Exclusive {
			return nil, kv.StatusMapExists, nil
		}

		return existing.(*mapData), kv.StatusOK, nil
	}

	if !options.Create {
		return nil, kv.StatusNotFound, nil
	}

	data := &mapData{tree: newTree()}
	store.maps.Put(name, data)

	return data, kv.StatusOK, nil
}

func (store *MemoryRootStore) Remove(name string) (kv.Status, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.closed {
		return kv.StatusOK, kv.ErrClosed
	}

	if store.handles.Open(name) {
		return kv.StatusOK, kv.ErrHandleOpen
	}

	if _, ok := store.maps.Get(name); !ok {
		return kv.StatusNotFound, nil
	}

	store.maps.Remove(name)

	return kv.StatusOK, nil
}

func (store *MemoryRootStore) Sync() error {
	if store.isClosed() {
		return kv.ErrClosed
	}

	return nil
}

func (store *MemoryRootStore) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.closed = true

	return nil
}

func (store *MemoryRootStore) Delete() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.closed = true
	store.maps.Clear()

	return nil
}

var _ kv.Map = (*MemoryMap)(nil)

type MemoryMap struct {
	store  *MemoryRootStore
	name   string
	data   *mapData
	closed int32
}

func (m *MemoryMap) check() error {
	if atomic.LoadInt32(&m.closed) == 1 || m.store.isClosed() {
		return kv.ErrClosed
	}

	return nil
}

func (m *MemoryMap) Name() string {
	return m.name
}

func (m *MemoryMap) Get(key []byte) ([]byte, kv.Status, error) {
	if err := m.check(); err != nil {
		return nil, kv.StatusOK, err
	}

	if len(key) == 0 {
		return nil, kv.StatusOK, kv.ErrKeyRequired
	}

	m.data.mu.RLock()
	defer m.data.mu.RUnlock()

	item, ok := m.data.tree.Get(record{key: key})

	if !ok {
		return nil, kv.StatusNotFound, nil
	}

	return keys.Copy(item.value), kv.StatusOK, nil
}

func (m *MemoryMap) Put(key, value []byte) error {
	if err := m.check(); err != nil {
		return err
	}

	if len(key) == 0 {
		return kv.ErrKeyRequired
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	m.data.tree.Set(newRecord(key, value))

	return nil
}

func (m *MemoryMap) PutNoOverwrite(key, value []byte) (kv.Status, error) {
	if err := m.check(); err != nil {
		return kv.StatusOK, err
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	return putNoOverwrite(m.data.tree, key, value)
}

func (m *MemoryMap) Delete(key []byte) (kv.Status, error) {
	if err := m.check(); err != nil {
		return kv.StatusOK, err
	}

	if len(key) == 0 {
		return kv.StatusOK, kv.ErrKeyRequired
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	if _, ok := m.data.tree.Delete(record{key: key}); !ok {
		return kv.StatusNotFound, nil
	}

	return kv.StatusOK, nil
}

func (m *MemoryMap) Cursor() (kv.Cursor, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	// Copy marks the live tree copy-on-write so it
	// needs the same exclusion as a write.
	m.data.mu.Lock()
	snapshot := m.data.tree.Copy()
	m.data.mu.Unlock()

	return &MemoryCursor{iter: snapshot.Iter()}, nil
}

func (m *MemoryMap) Begin() (kv.Transaction, error) {
	if err := m.check(); err != nil {
		return nil, err
	}

	// Writers to the map wait until this transaction
	// commits or rolls back.
	m.data.mu.Lock()

	return &MemoryTransaction{data: m.data, working: m.data.tree.Copy()}, nil
}

func (m *MemoryMap) Close() error {
	if !atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		return kv.ErrClosed
	}

	m.store.handles.Release(m.name)

	return nil
}

var _ kv.Transaction = (*MemoryTransaction)(nil)

// MemoryTransaction works on a copy of the map's tree and
// swaps it in on commit. It holds the map's write lock
// for its whole lifetime.
type MemoryTransaction struct {
	data    *mapData
	working *btree.BTreeG[record]
	cursors []*MemoryCursor
	done    bool
}

func (transaction *MemoryTransaction) Cursor() (kv.Cursor, error) {
	if transaction.done {
		return nil, kv.ErrClosed
	}

	cursor := &MemoryCursor{iter: transaction.working.Iter(), tree: transaction.working, writable: true}
	transaction.cursors = append(transaction.cursors, cursor)

	return cursor, nil
}

func (transaction *MemoryTransaction) PutNoOverwrite(key, value []byte) (kv.Status, error) {
	if transaction.done {
		return kv.StatusOK, kv.ErrClosed
	}

	return putNoOverwrite(transaction.working, key, value)
}

func (transaction *MemoryTransaction) finish() {
	for _, cursor := range transaction.cursors {
		cursor.Close()
	}

	transaction.done = true
	transaction.data.mu.Unlock()
}

func (transaction *MemoryTransaction) Commit() error {
	if transaction.done {
		return kv.ErrClosed
	}

	transaction.data.tree = transaction.working
	transaction.finish()

	return nil
}

func (transaction *MemoryTransaction) Rollback() error {
	if transaction.done {
		return nil
	}

	transaction.finish()

	return nil
}

var _ kv.Cursor = (*MemoryCursor)(nil)

type MemoryCursor struct {
	iter     btree.IterG[record]
	tree     *btree.BTreeG[record]
	writable bool
	current  []byte
	closed   bool
}

func (cursor *MemoryCursor) position(ok bool) ([]byte, []byte) {
	if !ok || cursor.closed {
		cursor.current = nil

		return nil, nil
	}

	item := cursor.iter.Item()
	cursor.current = item.key

	return keys.Copy(item.key), keys.Copy(item.value)
}

func (cursor *MemoryCursor) Seek(seek []byte) ([]byte, []byte) {
	if len(seek) == 0 {
		return cursor.First()
	}

	return cursor.position(!cursor.closed && cursor.iter.Seek(record{key: seek}))
}

func (cursor *MemoryCursor) First() ([]byte, []byte) {
	return cursor.position(!cursor.closed && cursor.iter.First())
}

func (cursor *MemoryCursor) Last() ([]byte, []byte) {
	return cursor.position(!cursor.closed && cursor.iter.Last())
}

func (cursor *MemoryCursor) Next() ([]byte, []byte) {
	return cursor.position(!cursor.closed && cursor.iter.Next())
}

func (cursor *MemoryCursor) Prev() ([]byte, []byte) {
	return cursor.position(!cursor.closed && cursor.iter.Prev())
}

func (cursor *MemoryCursor) PutCurrent(value []byte) error {
	if !cursor.writable {
		return kv.ErrReadOnly
	}

	if cursor.closed {
		return kv.ErrClosed
	}

	if cursor.current == nil {
		return kv.ErrNoCurrentRecord
	}

	cursor.tree.Set(newRecord(cursor.current, value))

	return nil
}

func (cursor *MemoryCursor) Error() error {
	return nil
}

func (cursor *MemoryCursor) Close() error {
	if cursor.closed {
		return nil
	}

	cursor.closed = true
	cursor.iter.Release()

	return nil
}

func newRecord(key, value []byte) record {
	v := keys.Copy(value)

	if v == nil {
		v = []byte{}
	}

	return record{key: keys.Copy(key), value: v}
}

func putNoOverwrite(tree *btree.BTreeG[record], key, value []byte) (kv.Status, error) {
	if len(key) == 0 {
		return kv.StatusOK, kv.ErrKeyRequired
	}

	if _, ok := tree.Get(record{key: key}); ok {
		return kv.StatusKeyExists, nil
	}

	tree.Set(newRecord(key, value))

	return kv.StatusOK, nil
}
