package mapkeeper

import (
	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/storage/kv/keys"
)

// page accumulates scan results and tracks the page limits
type page struct {
	maxRecords int
	maxBytes   int
	bytes      int
	records    []Record
}

func newPage(request ScanRequest) *page {
	return &page{
		maxRecords: request.MaxRecords,
		maxBytes:   request.MaxBytes,
		records:    []Record{},
	}
}

// add appends a record and returns true if a limit has been reached.
// Limits are checked after the record is added so a record is never
// split or dropped for being too large.
func (p *page) add(key []byte, value []byte) bool {
	p.records = append(p.records, Record{Key: key, Value: value})
	p.bytes += len(key) + len(value)

	if p.maxRecords > 0 && len(p.records) >= p.maxRecords {
		return true
	}

	return p.bytes >= p.maxBytes
}

// ended returns ScanEnded for a cursor that ran out of records,
// unless it ran out because of an error.
func (p *page) ended(cursor kv.Cursor) (ResponseCode, []Record, error) {
	if err := cursor.Error(); err != nil {
		return Error, nil, err
	}

	return ScanEnded, p.records, nil
}

// Continue returns the request for the page that follows
// a page whose last record had the key last. Ascending scans
// resume inclusively at the key just past last. Descending
// scans resume below last. Limits are kept.
func (request ScanRequest) Continue(last []byte) ScanRequest {
	next := request

	if request.Order == Descending {
		next.EndKey = keys.Copy(last)
		next.EndInclusive = false

		return next
	}

	next.StartKey = keys.Next(last)
	next.StartInclusive = true

	return next
}

func scan(cursor kv.Cursor, request ScanRequest) (ResponseCode, []Record, error) {
	if request.Order == Descending {
		return scanDescending(cursor, request)
	}

	return scanAscending(cursor, request)
}

// scanAscending starts at the smallest key >= StartKey and walks
// forward until it passes EndKey or fills a page.
func scanAscending(cursor kv.Cursor, request ScanRequest) (ResponseCode, []Record, error) {
	p := newPage(request)
	key, value := cursor.Seek(request.StartKey)

	for {
		if key == nil {
			return p.ended(cursor)
		}

		if !request.StartInclusive && keys.Compare(key, request.StartKey) == 0 {
			key, value = cursor.Next()

			continue
		}

		if keys.AboveMax(key, request.EndKey, request.EndInclusive) {
			return ScanEnded, p.records, nil
		}

		if p.add(key, value) {
			return Success, p.records, nil
		}

		key, value = cursor.Next()
	}
}

// scanDescending starts near EndKey and walks backward until it
// passes StartKey or fills a page. The cursor can only seek to the
// smallest key >= EndKey, so it may land one key past the range and
// has to step back before emitting anything. If nothing is >= EndKey
// every key is below it and the scan starts from the last key.
func scanDescending(cursor kv.Cursor, request ScanRequest) (ResponseCode, []Record, error) {
	p := newPage(request)

	var key, value []byte

	if !keys.Unbounded(request.EndKey) {
		key, value = cursor.Seek(request.EndKey)

		if err := cursor.Error(); err != nil {
			return Error, nil, err
		}
	}

	if key == nil {
		key, value = cursor.Last()
	}

	for {
		if key == nil {
			return p.ended(cursor)
		}

		if keys.AboveMax(key, request.EndKey, request.EndInclusive) {
			key, value = cursor.Prev()

			continue
		}

		if keys.BelowMin(key, request.StartKey, request.StartInclusive) {
			return ScanEnded, p.records, nil
		}

		if p.add(key, value) {
			return Success, p.records, nil
		}

		key, value = cursor.Prev()
	}
}
