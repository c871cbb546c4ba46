package mapkeeper

import (
	"bytes"
	"fmt"

	"github.com/jrife/mapkeeper/storage/kv"
)

func get(m kv.Map, key []byte) (ResponseCode, []byte, error) {
	value, status, err := m.Get(key)

	if err != nil {
		return Error, nil, err
	}

	if status == kv.StatusNotFound {
		return RecordNotFound, nil, nil
	}

	return Success, value, nil
}

func put(m kv.Map, key []byte, value []byte) (ResponseCode, error) {
	if err := m.Put(key, value); err != nil {
		return Error, err
	}

	return Success, nil
}

func insert(m kv.Map, key []byte, value []byte) (ResponseCode, error) {
	status, err := m.PutNoOverwrite(key, value)

	if err != nil {
		return Error, err
	}

	if status == kv.StatusKeyExists {
		return RecordExists, nil
	}

	return Success, nil
}

func remove(m kv.Map, key []byte) (ResponseCode, error) {
	status, err := m.Delete(key)

	if err != nil {
		return Error, err
	}

	if status == kv.StatusNotFound {
		return RecordNotFound, nil
	}

	return Success, nil
}

// withTransaction runs fn in a read-write transaction. The
// transaction commits only if fn returns Success without error.
// Any other outcome rolls it back.
func withTransaction(m kv.Map, fn func(txn kv.Transaction) (ResponseCode, error)) (ResponseCode, error) {
	txn, err := m.Begin()

	if err != nil {
		return Error, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer txn.Rollback()

	code, err := fn(txn)

	if err != nil {
		return Error, err
	}

	if code != Success {
		return code, nil
	}

	if err := txn.Commit(); err != nil {
		return Error, fmt.Errorf("could not commit transaction: %w", err)
	}

	return Success, nil
}

// update overwrites the value of an existing record. The record is
// located with a write-intent cursor and must match key exactly: a
// larger key that happens to follow a missing key is never touched.
func update(m kv.Map, key []byte, value []byte) (ResponseCode, error) {
	if len(key) == 0 {
		return Error, kv.ErrKeyRequired
	}

	return withTransaction(m, func(txn kv.Transaction) (ResponseCode, error) {
		cursor, err := txn.Cursor()

		if err != nil {
			return Error, fmt.Errorf("could not open cursor: %w", err)
		}

		defer cursor.Close()

		current, _ := cursor.Seek(key)

		if err := cursor.Error(); err != nil {
			return Error, err
		}

		if current == nil || !bytes.Equal(current, key) {
			return RecordNotFound, nil
		}

		if err := cursor.PutCurrent(value); err != nil {
			return Error, err
		}

		return Success, nil
	})
}

// insertMany inserts every record or none of them. A key that already
// exists, in the map or earlier in the same batch, fails the batch.
func insertMany(m kv.Map, records []Record) (ResponseCode, error) {
	if len(records) == 0 {
		return Success, nil
	}

	return withTransaction(m, func(txn kv.Transaction) (ResponseCode, error) {
		for _, record := range records {
			status, err := txn.PutNoOverwrite(record.Key, record.Value)

			if err != nil {
				return Error, err
			}

			if status == kv.StatusKeyExists {
				return RecordExists, nil
			}
		}

		return Success, nil
	})
}
