package kv_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/storage/kv/plugins"
)

type mapModel map[string]string
type storeModel map[string]mapModel

func writeStore(store kv.RootStore, model storeModel) error {
	for name, records := range model {
		m, status, err := store.Open(name, kv.OpenOptions{Create: true, Exclusive: true})

		if err != nil {
			return err
		}

		if status != kv.StatusOK {
			return fmt.Errorf("could not create map %s: %s", name, status)
		}

		for key, value := range records {
			if err := m.Put([]byte(key), []byte(value)); err != nil {
				m.Close()

				return err
			}
		}

		if err := m.Close(); err != nil {
			return err
		}
	}

	return nil
}

func readMap(m kv.Map) ([][2]string, error) {
	cursor, err := m.Cursor()

	if err != nil {
		return nil, err
	}

	defer cursor.Close()

	records := [][2]string{}

	for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
		records = append(records, [2]string{string(key), string(value)})
	}

	return records, cursor.Error()
}

type tempStoreBuilder func(t *testing.T, model storeModel) (kv.RootStore, func())

func builder(plugin kv.Plugin) tempStoreBuilder {
	return func(t *testing.T, model storeModel) (kv.RootStore, func()) {
		store, err := plugin.NewTempRootStore()

		if err != nil {
			t.Fatalf("Could not build a %s store: %s", plugin.Name(), err.Error())
		}

		if model != nil {
			if err := writeStore(store, model); err != nil {
				store.Delete()
				t.Fatalf("Could not populate %s store: %s", plugin.Name(), err.Error())
			}
		}

		return store, func() { store.Delete() }
	}
}

func TestDrivers(t *testing.T) {
	for _, plugin := range plugins.Plugins() {
		t.Run(plugin.Name(), driverTest(builder(plugin)))
	}
}

func driverTest(builder tempStoreBuilder) func(t *testing.T) {
	return func(t *testing.T) {
		testDriver(builder, t)
	}
}

func testDriver(builder tempStoreBuilder, t *testing.T) {
	t.Run("Maps", func(t *testing.T) { testMaps(builder, t) })
	t.Run("Open", func(t *testing.T) { testOpen(builder, t) })
	t.Run("Remove", func(t *testing.T) { testRemove(builder, t) })
	t.Run("Records", func(t *testing.T) { testRecords(builder, t) })
	t.Run("Cursor", func(t *testing.T) { testCursor(builder, t) })
	t.Run("Transaction", func(t *testing.T) { testTransaction(builder, t) })
	t.Run("Closed", func(t *testing.T) { testClosed(builder, t) })
	t.Run("Concurrent", func(t *testing.T) { testConcurrent(builder, t) })
}

func testMaps(builder tempStoreBuilder, t *testing.T) {
	testCases := map[string]struct {
		model  storeModel
		result []string
	}{
		"empty": {
			model:  storeModel{},
			result: []string{},
		},
		"sorted": {
			model: storeModel{
				"c": mapModel{},
				"a": mapModel{"k": "v"},
				"b": mapModel{},
			},
			result: []string{"a", "b", "c"},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			store, cleanup := builder(t, testCase.model)
			defer cleanup()

			maps, err := store.Maps()

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if diff := cmp.Diff(testCase.result, maps); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func testOpen(builder tempStoreBuilder, t *testing.T) {
	testCases := map[string]struct {
		model   storeModel
		name    string
		options kv.OpenOptions
		status  kv.Status
	}{
		"exclusive-create-new": {
			model:   storeModel{},
			name:    "a",
			options: kv.OpenOptions{Create: true, Exclusive: true},
			status:  kv.StatusOK,
		},
		"exclusive-create-existing": {
			model:   storeModel{"a": mapModel{}},
			name:    "a",
			options: kv.OpenOptions{Create: true, Exclusive: true},
			status:  kv.StatusMapExists,
		},
		"create-existing": {
			model:   storeModel{"a": mapModel{}},
			name:    "a",
			options: kv.OpenOptions{Create: true},
			status:  kv.StatusOK,
		},
		"open-existing": {
			model:   storeModel{"a": mapModel{}},
			name:    "a",
			options: kv.OpenOptions{},
			status:  kv.StatusOK,
		},
		"open-missing": {
			model:   storeModel{"a": mapModel{}},
			name:    "b",
			options: kv.OpenOptions{},
			status:  kv.StatusNotFound,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			store, cleanup := builder(t, testCase.model)
			defer cleanup()

			m, status, err := store.Open(testCase.name, testCase.options)

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if status != testCase.status {
				t.Fatalf("expected status to be %s, got %s", testCase.status, status)
			}

			if status != kv.StatusOK {
				if m != nil {
					t.Fatalf("expected no handle when status is %s", status)
				}

				// A failed open must not leave a handle behind
				if testCase.status == kv.StatusMapExists {
					if _, err := store.Remove(testCase.name); err != nil {
						t.Fatalf("expected err to be nil, got %#v", err)
					}
				}

				return
			}

			if m.Name() != testCase.name {
				t.Fatalf("expected name %s, got %s", testCase.name, m.Name())
			}

			if err := m.Close(); err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if err := m.Close(); err != kv.ErrClosed {
				t.Fatalf("expected second close to return ErrClosed, got %#v", err)
			}
		})
	}
}

func testRemove(builder tempStoreBuilder, t *testing.T) {
	store, cleanup := builder(t, storeModel{"a": mapModel{"k": "v"}})
	defer cleanup()

	m, _, err := store.Open("a", kv.OpenOptions{})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, err := store.Remove("a"); err != kv.ErrHandleOpen {
		t.Fatalf("expected ErrHandleOpen while a handle is open, got %#v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	status, err := store.Remove("a")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if status != kv.StatusOK {
		t.Fatalf("expected status OK, got %s", status)
	}

	status, err = store.Remove("a")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if status != kv.StatusNotFound {
		t.Fatalf("expected status NotFound, got %s", status)
	}

	maps, err := store.Maps()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([]string{}, maps); diff != "" {
		t.Fatal(diff)
	}

	// Recreating a removed map starts empty
	m, status, err = store.Open("a", kv.OpenOptions{Create: true, Exclusive: true})

	if err != nil || status != kv.StatusOK {
		t.Fatalf("expected map to be recreated, got %s, %#v", status, err)
	}

	defer m.Close()

	if _, status, _ := m.Get([]byte("k")); status != kv.StatusNotFound {
		t.Fatalf("expected old record to be gone, got %s", status)
	}
}

func testRecords(builder tempStoreBuilder, t *testing.T) {
	store, cleanup := builder(t, storeModel{"a": mapModel{}})
	defer cleanup()

	m, _, err := store.Open("a", kv.OpenOptions{})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer m.Close()

	if _, status, err := m.Get([]byte("k")); err != nil || status != kv.StatusNotFound {
		t.Fatalf("expected NotFound, got %s, %#v", status, err)
	}

	if err := m.Put([]byte("k"), []byte("v1")); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if status, err := m.PutNoOverwrite([]byte("k"), []byte("v2")); err != nil || status != kv.StatusKeyExists {
		t.Fatalf("expected KeyExists, got %s, %#v", status, err)
	}

	value, status, err := m.Get([]byte("k"))

	if err != nil || status != kv.StatusOK {
		t.Fatalf("expected OK, got %s, %#v", status, err)
	}

	if diff := cmp.Diff([]byte("v1"), value); diff != "" {
		t.Fatal(diff)
	}

	if err := m.Put([]byte("empty"), []byte{}); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if value, status, err := m.Get([]byte("empty")); err != nil || status != kv.StatusOK || len(value) != 0 {
		t.Fatalf("expected empty value to be found, got %v, %s, %#v", value, status, err)
	}

	if status, err := m.Delete([]byte("k")); err != nil || status != kv.StatusOK {
		t.Fatalf("expected OK, got %s, %#v", status, err)
	}

	if status, err := m.Delete([]byte("k")); err != nil || status != kv.StatusNotFound {
		t.Fatalf("expected NotFound, got %s, %#v", status, err)
	}

	if err := m.Put([]byte{}, []byte("v")); err != kv.ErrKeyRequired {
		t.Fatalf("expected ErrKeyRequired, got %#v", err)
	}
}

func testCursor(builder tempStoreBuilder, t *testing.T) {
	store, cleanup := builder(t, storeModel{"a": mapModel{"b": "2", "d": "4", "a": "1", "c": "3"}})
	defer cleanup()

	m, _, err := store.Open("a", kv.OpenOptions{})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer m.Close()

	records, err := readMap(m)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff([][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}}, records); diff != "" {
		t.Fatal(diff)
	}

	cursor, err := m.Cursor()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer cursor.Close()

	testCases := []struct {
		name string
		move func() ([]byte, []byte)
		key  []byte
	}{
		{"seek-exact", func() ([]byte, []byte) { return cursor.Seek([]byte("b")) }, []byte("b")},
		{"next", cursor.Next, []byte("c")},
		{"prev", cursor.Prev, []byte("b")},
		{"seek-between", func() ([]byte, []byte) { return cursor.Seek([]byte("bb")) }, []byte("c")},
		{"seek-past-end", func() ([]byte, []byte) { return cursor.Seek([]byte("e")) }, nil},
		{"seek-empty", func() ([]byte, []byte) { return cursor.Seek(nil) }, []byte("a")},
		{"prev-off-start", cursor.Prev, nil},
		{"last", cursor.Last, []byte("d")},
		{"next-off-end", cursor.Next, nil},
		{"first", cursor.First, []byte("a")},
	}

	for _, testCase := range testCases {
		key, _ := testCase.move()

		if diff := cmp.Diff(testCase.key, key); diff != "" {
			t.Fatalf("%s: %s", testCase.name, diff)
		}
	}

	if err := cursor.PutCurrent([]byte("x")); err != kv.ErrReadOnly {
		t.Fatalf("expected ErrReadOnly, got %#v", err)
	}
}

func testTransaction(builder tempStoreBuilder, t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		store, cleanup := builder(t, storeModel{"a": mapModel{"a": "1", "c": "3"}})
		defer cleanup()

		m, _, err := store.Open("a", kv.OpenOptions{})

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		defer m.Close()

		txn, err := m.Begin()

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		cursor, err := txn.Cursor()

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if key, _ := cursor.Seek([]byte("c")); string(key) != "c" {
			t.Fatalf("expected cursor at c, got %q", key)
		}

		if err := cursor.PutCurrent([]byte("33")); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		cursor.Close()

		if status, err := txn.PutNoOverwrite([]byte("b"), []byte("2")); err != nil || status != kv.StatusOK {
			t.Fatalf("expected OK, got %s, %#v", status, err)
		}

		if status, err := txn.PutNoOverwrite([]byte("b"), []byte("22")); err != nil || status != kv.StatusKeyExists {
			t.Fatalf("expected KeyExists for a key written by the same transaction, got %s, %#v", status, err)
		}

		if err := txn.Commit(); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if err := txn.Rollback(); err != nil {
			t.Fatalf("expected rollback after commit to have no effect, got %#v", err)
		}

		records, err := readMap(m)

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if diff := cmp.Diff([][2]string{{"a", "1"}, {"b", "2"}, {"c", "33"}}, records); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("rollback", func(t *testing.T) {
		store, cleanup := builder(t, storeModel{"a": mapModel{"a": "1"}})
		defer cleanup()

		m, _, err := store.Open("a", kv.OpenOptions{})

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		defer m.Close()

		txn, err := m.Begin()

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if _, err := txn.PutNoOverwrite([]byte("b"), []byte("2")); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		cursor, err := txn.Cursor()

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		cursor.First()

		if err := cursor.PutCurrent([]byte("11")); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		cursor.Close()

		if err := txn.Rollback(); err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		records, err := readMap(m)

		if err != nil {
			t.Fatalf("expected err to be nil, got %#v", err)
		}

		if diff := cmp.Diff([][2]string{{"a", "1"}}, records); diff != "" {
			t.Fatal(diff)
		}
	})
}

func testClosed(builder tempStoreBuilder, t *testing.T) {
	store, cleanup := builder(t, storeModel{"a": mapModel{"a": "1"}})
	defer cleanup()

	m, _, err := store.Open("a", kv.OpenOptions{})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, _, err := m.Get([]byte("a")); err != kv.ErrClosed {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}

	if err := m.Put([]byte("a"), []byte("2")); err != kv.ErrClosed {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}

	if _, err := m.Cursor(); err != kv.ErrClosed {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}

	if _, err := m.Begin(); err != kv.ErrClosed {
		t.Fatalf("expected ErrClosed, got %#v", err)
	}
}

func testConcurrent(builder tempStoreBuilder, t *testing.T) {
	store, cleanup := builder(t, storeModel{"a": mapModel{}})
	defer cleanup()

	m, _, err := store.Open("a", kv.OpenOptions{})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer m.Close()

	var wg sync.WaitGroup
	var inserted int32
	var mu sync.Mutex

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 50; j++ {
				status, err := m.PutNoOverwrite([]byte(fmt.Sprintf("key%03d", j)), []byte("v"))

				if err != nil {
					t.Errorf("expected err to be nil, got %#v", err)

					return
				}

				if status == kv.StatusOK {
					mu.Lock()
					inserted++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	if inserted != 50 {
		t.Fatalf("expected each key to be inserted exactly once, got %d inserts", inserted)
	}

	records, err := readMap(m)

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if len(records) != 50 {
		t.Fatalf("expected 50 records, got %d", len(records))
	}
}
