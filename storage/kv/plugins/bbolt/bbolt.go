package bbolt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/storage/kv/keys"
	bolt "go.etcd.io/bbolt"
)

const (
	// DriverName is the name under which this plugin is registered
	DriverName = "bbolt"
	// DBFileName is the name of the database file inside the data directory
	DBFileName = "mapkeeper.db"
)

var (
	rootBucket = []byte("maps")

	// ErrMapMissing indicates that the bucket backing an open
	// handle disappeared. It means the map was removed behind
	// the handle's back.
	ErrMapMissing = errors.New("bucket for map is missing")
)

func Plugins() []kv.Plugin {
	return []kv.Plugin{
		&BBoltPlugin{},
	}
}

type BBoltPlugin struct {
}

func (plugin *BBoltPlugin) Name() string {
	return DriverName
}

func (plugin *BBoltPlugin) NewRootStore(options kv.PluginOptions) (kv.RootStore, error) {
	var config BBoltRootStoreConfig

	if path, ok := options["path"]; !ok {
		return nil, fmt.Errorf("\"path\" is required")
	} else if pathString, ok := path.(string); !ok {
		return nil, fmt.Errorf("\"path\" must be a string")
	} else {
		config.Path = pathString
	}

	if pageSize, ok := options["page_size"]; ok {
		if pageSizeInt, ok := pageSize.(int); !ok {
			return nil, fmt.Errorf("\"page_size\" must be an int")
		} else {
			config.PageSize = pageSizeInt
		}
	}

	if noSync, ok := options["no_sync"]; ok {
		if noSyncBool, ok := noSync.(bool); !ok {
			return nil, fmt.Errorf("\"no_sync\" must be a bool")
		} else {
			config.NoSync = noSyncBool
		}
	}

	if timeout, ok := options["timeout"]; ok {
		if timeoutDuration, ok := timeout.(time.Duration); !ok {
			return nil, fmt.Errorf("\"timeout\" must be a time.Duration")
		} else {
			config.Timeout = timeoutDuration
		}
	}

	store, err := New(config)

	if err != nil {
		return nil, err
	}

	return store, nil
}

func (plugin *BBoltPlugin) NewTempRootStore() (kv.RootStore, error) {
	return plugin.NewRootStore(kv.PluginOptions{
		"path":    filepath.Join(os.TempDir(), fmt.Sprintf("bbolt-%s", uuid.New().String())),
		"no_sync": true,
	})
}

// BBoltRootStoreConfig configures a bbolt root store
type BBoltRootStoreConfig struct {
	// Path is the data directory. The database file
	// is created inside it.
	Path string
	// PageSize overrides the bbolt page size when
	// creating a new database file. 0 means the OS default.
	PageSize int
	// NoSync skips fsync after each commit. Callers are
	// expected to call Sync periodically.
	NoSync bool
	// Timeout is how long to wait for the file lock.
	// 0 means wait forever.
	Timeout time.Duration
}

var _ kv.RootStore = (*BBoltRootStore)(nil)

func New(config BBoltRootStoreConfig) (*BBoltRootStore, error) {
	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %s: %w", config.Path, err)
	}

	db, err := bolt.Open(filepath.Join(config.Path, DBFileName), 0666, &bolt.Options{
		Timeout:  config.Timeout,
		NoSync:   config.NoSync,
		PageSize: config.PageSize,
	})

	if err != nil {
		return nil, fmt.Errorf("could not open bbolt store at %s: %w", config.Path, err)
	}

	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(rootBucket)

		return err
	}); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not ensure root bucket exists: %w", err)
	}

	return &BBoltRootStore{
		db:   db,
		path: config.Path,
	}, nil
}

// BBoltRootStore keeps every map as a bucket nested
// under a single root bucket
type BBoltRootStore struct {
	db      *bolt.DB
	path    string
	handles kv.HandleCounter
}

func (store *BBoltRootStore) Maps() ([]string, error) {
	var maps []string = []string{}

	if err := store.db.View(func(txn *bolt.Tx) error {
		root := txn.Bucket(rootBucket)

		if root == nil {
			return fmt.Errorf("root bucket is missing")
		}

		return root.ForEach(func(name []byte, value []byte) error {
			if value == nil {
				maps = append(maps, string(name))
			}

			return nil
		})
	}); err != nil {
		return nil, wrapError("could not list maps", err)
	}

	return maps, nil
}

func (store *BBoltRootStore) Open(name string, options kv.OpenOptions) (kv.Map, kv.Status, error) {
	// Acquire before checking existence so that a concurrent
	// Remove sees this handle and refuses to delete the bucket.
	store.handles.Acquire(name)

	status, err := store.ensure(name, options)

	if err != nil || status != kv.StatusOK {
		store.handles.Release(name)

		return nil, status, err
	}

	return &BBoltMap{store: store, name: name, bucketName: []byte(name)}, kv.StatusOK, nil
}

func (store *BBoltRootStore) ensure(name string, options kv.OpenOptions) (kv.Status, error) {
	var status kv.Status = kv.StatusOK

	if !options.Create {
		err := store.db.View(func(txn *bolt.Tx) error {
			if txn.Bucket(rootBucket).Bucket([]byte(name)) == nil {
				status = kv.StatusNotFound
			}

			return nil
		})

		if err != nil {
			return status, wrapError("could not look up map", err)
		}

		return status, nil
	}

	err := store.db.Update(func(txn *bolt.Tx) error {
		root := txn.Bucket(rootBucket)

		if !options.Exclusive {
			_, err := root.CreateBucketIfNotExists([]byte(name))

			return err
		}

		_, err := root.CreateBucket([]byte(name))

		if err == bolt.ErrBucketExists {
			status = kv.StatusMapExists

			return nil
		}

		return err
	})

	if err != nil {
		return status, wrapError("could not create map", err)
	}

	return status, nil
}

func (store *BBoltRootStore) Remove(name string) (kv.Status, error) {
	if store.handles.Open(name) {
		return kv.StatusOK, kv.ErrHandleOpen
	}

	var status kv.Status = kv.StatusOK

	if err := store.db.Update(func(txn *bolt.Tx) error {
		err := txn.Bucket(rootBucket).DeleteBucket([]byte(name))

		if err == bolt.ErrBucketNotFound {
			status = kv.StatusNotFound

			return nil
		}

		return err
	}); err != nil {
		return status, wrapError("could not remove map", err)
	}

	return status, nil
}

func (store *BBoltRootStore) Sync() error {
	if err := store.db.Sync(); err != nil {
		return wrapError("could not sync", err)
	}

	return nil
}

func (store *BBoltRootStore) Close() error {
	return store.db.Close()
}

func (store *BBoltRootStore) Delete() error {
	if err := store.Close(); err != nil {
		return fmt.Errorf("could not close store: %w", err)
	}

	if err := os.RemoveAll(store.path); err != nil {
		return fmt.Errorf("could not remove path %s: %w", store.path, err)
	}

	return nil
}

var _ kv.Map = (*BBoltMap)(nil)

type BBoltMap struct {
	store      *BBoltRootStore
	name       string
	bucketName []byte
	closed     int32
}

func (m *BBoltMap) bucket(txn *bolt.Tx) (*bolt.Bucket, error) {
	bucket := txn.Bucket(rootBucket).Bucket(m.bucketName)

	if bucket == nil {
		return nil, ErrMapMissing
	}

	return bucket, nil
}

func (m *BBoltMap) isClosed() bool {
	return atomic.LoadInt32(&m.closed) == 1
}

func (m *BBoltMap) Name() string {
	return m.name
}

func (m *BBoltMap) Get(key []byte) ([]byte, kv.Status, error) {
	if m.isClosed() {
		return nil, kv.StatusOK, kv.ErrClosed
	}

	if len(key) == 0 {
		return nil, kv.StatusOK, kv.ErrKeyRequired
	}

	var value []byte

	if err := m.store.db.View(func(txn *bolt.Tx) error {
		bucket, err := m.bucket(txn)

		if err != nil {
			return err
		}

		value = keys.Copy(bucket.Get(key))

		return nil
	}); err != nil {
		return nil, kv.StatusOK, wrapError("could not get key", err)
	}

	if value == nil {
		return nil, kv.StatusNotFound, nil
	}

	return value, kv.StatusOK, nil
}

func (m *BBoltMap) update(wrap string, fn func(bucket *bolt.Bucket) error) error {
	if m.isClosed() {
		return kv.ErrClosed
	}

	if err := m.store.db.Update(func(txn *bolt.Tx) error {
		bucket, err := m.bucket(txn)

		if err != nil {
			return err
		}

		return fn(bucket)
	}); err != nil {
		return wrapError(wrap, err)
	}

	return nil
}

func (m *BBoltMap) Put(key, value []byte) error {
	return m.update("could not put key", func(bucket *bolt.Bucket) error {
		return bucket.Put(key, nonNil(value))
	})
}

func (m *BBoltMap) PutNoOverwrite(key, value []byte) (kv.Status, error) {
	var status kv.Status = kv.StatusOK

	err := m.update("could not insert key", func(bucket *bolt.Bucket) error {
		var err error

		status, err = putNoOverwrite(bucket, key, value)

		return err
	})

	return status, err
}

func (m *BBoltMap) Delete(key []byte) (kv.Status, error) {
	var status kv.Status = kv.StatusOK

	err := m.update("could not delete key", func(bucket *bolt.Bucket) error {
		if len(key) == 0 {
			return kv.ErrKeyRequired
		}

		if bucket.Get(key) == nil {
			status = kv.StatusNotFound

			return nil
		}

		return bucket.Delete(key)
	})

	return status, err
}

func (m *BBoltMap) Cursor() (kv.Cursor, error) {
	if m.isClosed() {
		return nil, kv.ErrClosed
	}

	txn, err := m.store.db.Begin(false)

	if err != nil {
		return nil, wrapError("could not begin transaction", err)
	}

	bucket, err := m.bucket(txn)

	if err != nil {
		txn.Rollback()

		return nil, err
	}

	return &BBoltCursor{cursor: bucket.Cursor(), bucket: bucket, txn: txn}, nil
}

func (m *BBoltMap) Begin() (kv.Transaction, error) {
	if m.isClosed() {
		return nil, kv.ErrClosed
	}

	txn, err := m.store.db.Begin(true)

	if err != nil {
		return nil, wrapError("could not begin transaction", err)
	}

	bucket, err := m.bucket(txn)

	if err != nil {
		txn.Rollback()

		return nil, err
	}

	return &BBoltTransaction{transaction: txn, bucket: bucket}, nil
}

func (m *BBoltMap) Close() error {
	if !atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		return kv.ErrClosed
	}

	m.store.handles.Release(m.name)

	return nil
}

var _ kv.Transaction = (*BBoltTransaction)(nil)

type BBoltTransaction struct {
	transaction *bolt.Tx
	bucket      *bolt.Bucket
}

func (transaction *BBoltTransaction) Cursor() (kv.Cursor, error) {
	return &BBoltCursor{cursor: transaction.bucket.Cursor(), bucket: transaction.bucket, writable: true}, nil
}

func (transaction *BBoltTransaction) PutNoOverwrite(key, value []byte) (kv.Status, error) {
	status, err := putNoOverwrite(transaction.bucket, key, value)

	if err != nil {
		return status, wrapError("could not insert key", err)
	}

	return status, nil
}

func (transaction *BBoltTransaction) Commit() error {
	if err := transaction.transaction.Commit(); err != nil {
		return wrapError("could not commit transaction", err)
	}

	return nil
}

func (transaction *BBoltTransaction) Rollback() error {
	if err := transaction.transaction.Rollback(); err != nil && err != bolt.ErrTxClosed {
		return wrapError("could not roll back transaction", err)
	}

	return nil
}

var _ kv.Cursor = (*BBoltCursor)(nil)

// BBoltCursor wraps a bolt cursor. Read cursors own their
// read-only transaction and roll it back on Close. Cursors
// created from a BBoltTransaction share its transaction.
type BBoltCursor struct {
	cursor   *bolt.Cursor
	bucket   *bolt.Bucket
	txn      *bolt.Tx
	writable bool
	current  []byte
}

func (cursor *BBoltCursor) position(key []byte, value []byte) ([]byte, []byte) {
	// Nested buckets are never created inside a map
	// bucket but skip them rather than return them as
	// records with a nil value.
	for key != nil && value == nil {
		key, value = cursor.cursor.Next()
	}

	cursor.current = keys.Copy(key)

	return cursor.current, keys.Copy(value)
}

func (cursor *BBoltCursor) positionReverse(key []byte, value []byte) ([]byte, []byte) {
	for key != nil && value == nil {
		key, value = cursor.cursor.Prev()
	}

	cursor.current = keys.Copy(key)

	return cursor.current, keys.Copy(value)
}

func (cursor *BBoltCursor) Seek(seek []byte) ([]byte, []byte) {
	if len(seek) == 0 {
		return cursor.First()
	}

	return cursor.position(cursor.cursor.Seek(seek))
}

func (cursor *BBoltCursor) First() ([]byte, []byte) {
	return cursor.position(cursor.cursor.First())
}

func (cursor *BBoltCursor) Last() ([]byte, []byte) {
	return cursor.positionReverse(cursor.cursor.Last())
}

func (cursor *BBoltCursor) Next() ([]byte, []byte) {
	return cursor.position(cursor.cursor.Next())
}

func (cursor *BBoltCursor) Prev() ([]byte, []byte) {
	return cursor.positionReverse(cursor.cursor.Prev())
}

func (cursor *BBoltCursor) PutCurrent(value []byte) error {
	if !cursor.writable {
		return kv.ErrReadOnly
	}

	if cursor.current == nil {
		return kv.ErrNoCurrentRecord
	}

	if err := cursor.bucket.Put(cursor.current, nonNil(value)); err != nil {
		return wrapError("could not overwrite current record", err)
	}

	return nil
}

func (cursor *BBoltCursor) Error() error {
	return nil
}

func (cursor *BBoltCursor) Close() error {
	if cursor.txn == nil {
		return nil
	}

	txn := cursor.txn
	cursor.txn = nil

	if err := txn.Rollback(); err != nil && err != bolt.ErrTxClosed {
		return wrapError("could not close cursor", err)
	}

	return nil
}

func putNoOverwrite(bucket *bolt.Bucket, key, value []byte) (kv.Status, error) {
	if len(key) == 0 {
		return kv.StatusOK, kv.ErrKeyRequired
	}

	if bucket.Get(key) != nil {
		return kv.StatusKeyExists, nil
	}

	if err := bucket.Put(key, nonNil(value)); err != nil {
		return kv.StatusOK, err
	}

	return kv.StatusOK, nil
}

// nonNil makes sure empty values are stored as empty rather
// than nil. bolt reports nil values for nested buckets and for
// missing keys.
func nonNil(value []byte) []byte {
	if value == nil {
		return []byte{}
	}

	return value
}

func wrapError(wrap string, err error) error {
	switch err {
	case bolt.ErrDatabaseNotOpen:
		return kv.ErrClosed
	case bolt.ErrKeyRequired:
		return kv.ErrKeyRequired
	case kv.ErrClosed, kv.ErrKeyRequired, kv.ErrHandleOpen, ErrMapMissing:
		fallthrough
	case nil:
		return err
	}

	return fmt.Errorf("%s: %w", wrap, err)
}
