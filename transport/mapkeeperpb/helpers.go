package mapkeeperpb

import (
	"github.com/jrife/mapkeeper/mapkeeper"
)

// NewRecords converts records to their wire form
func NewRecords(records []mapkeeper.Record) []*Record {
	result := make([]*Record, len(records))

	for i, record := range records {
		result[i] = &Record{Key: record.Key, Value: record.Value}
	}

	return result
}

// ToRecords converts wire records back. Nil entries
// become records with empty keys which the service
// rejects.
func ToRecords(records []*Record) []mapkeeper.Record {
	result := make([]mapkeeper.Record, len(records))

	for i, record := range records {
		if record == nil {
			continue
		}

		result[i] = mapkeeper.Record{Key: record.Key, Value: record.Value}
	}

	return result
}

// NewScanRequest converts a scan request to its wire form
func NewScanRequest(request mapkeeper.ScanRequest) *ScanRequest {
	return &ScanRequest{
		MapName:          request.Map,
		Order:            int32(request.Order),
		StartKey:         request.StartKey,
		StartKeyIncluded: request.StartInclusive,
		EndKey:           request.EndKey,
		EndKeyIncluded:   request.EndInclusive,
		MaxRecords:       int32(request.MaxRecords),
		MaxBytes:         int32(request.MaxBytes),
	}
}

// ScanRequest converts a wire scan request back
func (m *ScanRequest) Request() mapkeeper.ScanRequest {
	return mapkeeper.ScanRequest{
		Map:            m.MapName,
		Order:          mapkeeper.ScanOrder(m.Order),
		StartKey:       m.StartKey,
		StartInclusive: m.StartKeyIncluded,
		EndKey:         m.EndKey,
		EndInclusive:   m.EndKeyIncluded,
		MaxRecords:     int(m.MaxRecords),
		MaxBytes:       int(m.MaxBytes),
	}
}

// Code returns the response code as a mapkeeper.ResponseCode
func (m *ResponseCodeResponse) Code() mapkeeper.ResponseCode {
	return mapkeeper.ResponseCode(m.ResponseCode)
}

// Code returns the response code as a mapkeeper.ResponseCode
func (m *StringListResponse) Code() mapkeeper.ResponseCode {
	return mapkeeper.ResponseCode(m.ResponseCode)
}

// Code returns the response code as a mapkeeper.ResponseCode
func (m *RecordListResponse) Code() mapkeeper.ResponseCode {
	return mapkeeper.ResponseCode(m.ResponseCode)
}

// Code returns the response code as a mapkeeper.ResponseCode
func (m *BinaryResponse) Code() mapkeeper.ResponseCode {
	return mapkeeper.ResponseCode(m.ResponseCode)
}
