package mapkeeper

// ResponseCode is the outcome of a service operation. Every
// operation returns exactly one code. Expected conditions such
// as a missing map or record are codes, never errors.
type ResponseCode int32

// Values match the MapKeeper wire protocol
const (
	Success        ResponseCode = 0
	Error          ResponseCode = 1
	MapExists      ResponseCode = 2
	MapNotFound    ResponseCode = 3
	RecordExists   ResponseCode = 4
	RecordNotFound ResponseCode = 5
	ScanEnded      ResponseCode = 6
)

var responseCodeNames = map[ResponseCode]string{
	Success:        "Success",
	Error:          "Error",
	MapExists:      "MapExists",
	MapNotFound:    "MapNotFound",
	RecordExists:   "RecordExists",
	RecordNotFound: "RecordNotFound",
	ScanEnded:      "ScanEnded",
}

func (code ResponseCode) String() string {
	if name, ok := responseCodeNames[code]; ok {
		return name
	}

	return "Unknown"
}

// ScanOrder is the direction of a scan
type ScanOrder int32

const (
	Ascending  ScanOrder = 0
	Descending ScanOrder = 1
)

func (order ScanOrder) String() string {
	switch order {
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	}

	return "Unknown"
}

// Record is a key/value pair stored in a map
type Record struct {
	Key   []byte
	Value []byte
}

// ScanRequest describes a range scan.
//
// StartKey and EndKey bound the range regardless of Order, so
// StartKey should be <= EndKey. An empty key leaves that side of
// the range unbounded. If StartKey > EndKey the scan returns no
// records and ScanEnded.
//
// The scan stops with Success once it has returned MaxRecords
// records or once the returned keys and values add up to at
// least MaxBytes bytes. MaxRecords <= 0 means no record limit.
// MaxBytes is advisory: a record is never split, so the last
// record may push the page past it.
type ScanRequest struct {
	Map            string
	Order          ScanOrder
	StartKey       []byte
	StartInclusive bool
	EndKey         []byte
	EndInclusive   bool
	MaxRecords     int
	MaxBytes       int
}
