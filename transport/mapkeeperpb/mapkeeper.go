// Package mapkeeperpb contains the wire messages and the gRPC
// service description for the mapkeeper.MapKeeper service.
// Messages are plain structs carrying protobuf struct tags and
// are encoded by github.com/golang/protobuf through reflection.
package mapkeeperpb

import (
	proto "github.com/golang/protobuf/proto"
)

type PingRequest struct {
}

func (m *PingRequest) Reset()         { *m = PingRequest{} }
func (m *PingRequest) String() string { return proto.CompactTextString(m) }
func (*PingRequest) ProtoMessage()    {}

type ListMapsRequest struct {
}

func (m *ListMapsRequest) Reset()         { *m = ListMapsRequest{} }
func (m *ListMapsRequest) String() string { return proto.CompactTextString(m) }
func (*ListMapsRequest) ProtoMessage()    {}

// MapRequest names a map for AddMap and DropMap
type MapRequest struct {
	MapName string `protobuf:"bytes,1,opt,name=map_name,json=mapName,proto3" json:"map_name,omitempty"`
}

func (m *MapRequest) Reset()         { *m = MapRequest{} }
func (m *MapRequest) String() string { return proto.CompactTextString(m) }
func (*MapRequest) ProtoMessage()    {}

type ResponseCodeResponse struct {
	ResponseCode int32 `protobuf:"varint,1,opt,name=response_code,json=responseCode,proto3" json:"response_code,omitempty"`
}

func (m *ResponseCodeResponse) Reset()         { *m = ResponseCodeResponse{} }
func (m *ResponseCodeResponse) String() string { return proto.CompactTextString(m) }
func (*ResponseCodeResponse) ProtoMessage()    {}

type StringListResponse struct {
	ResponseCode int32    `protobuf:"varint,1,opt,name=response_code,json=responseCode,proto3" json:"response_code,omitempty"`
	Values       []string `protobuf:"bytes,2,rep,name=values,proto3" json:"values,omitempty"`
}

func (m *StringListResponse) Reset()         { *m = StringListResponse{} }
func (m *StringListResponse) String() string { return proto.CompactTextString(m) }
func (*StringListResponse) ProtoMessage()    {}

type Record struct {
	Key   []byte `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Value []byte `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Record) Reset()         { *m = Record{} }
func (m *Record) String() string { return proto.CompactTextString(m) }
func (*Record) ProtoMessage()    {}

type ScanRequest struct {
	MapName          string `protobuf:"bytes,1,opt,name=map_name,json=mapName,proto3" json:"map_name,omitempty"`
	Order            int32  `protobuf:"varint,2,opt,name=order,proto3" json:"order,omitempty"`
	StartKey         []byte `protobuf:"bytes,3,opt,name=start_key,json=startKey,proto3" json:"start_key,omitempty"`
	StartKeyIncluded bool   `protobuf:"varint,4,opt,name=start_key_included,json=startKeyIncluded,proto3" json:"start_key_included,omitempty"`
	EndKey           []byte `protobuf:"bytes,5,opt,name=end_key,json=endKey,proto3" json:"end_key,omitempty"`
	EndKeyIncluded   bool   `protobuf:"varint,6,opt,name=end_key_included,json=endKeyIncluded,proto3" json:"end_key_included,omitempty"`
	MaxRecords       int32  `protobuf:"varint,7,opt,name=max_records,json=maxRecords,proto3" json:"max_records,omitempty"`
	MaxBytes         int32  `protobuf:"varint,8,opt,name=max_bytes,json=maxBytes,proto3" json:"max_bytes,omitempty"`
}

func (m *ScanRequest) Reset()         { *m = ScanRequest{} }
func (m *ScanRequest) String() string { return proto.CompactTextString(m) }
func (*ScanRequest) ProtoMessage()    {}

type RecordListResponse struct {
	ResponseCode int32     `protobuf:"varint,1,opt,name=response_code,json=responseCode,proto3" json:"response_code,omitempty"`
	Records      []*Record `protobuf:"bytes,2,rep,name=records,proto3" json:"records,omitempty"`
}

func (m *RecordListResponse) Reset()         { *m = RecordListResponse{} }
func (m *RecordListResponse) String() string { return proto.CompactTextString(m) }
func (*RecordListResponse) ProtoMessage()    {}

// KeyRequest addresses one record for Get and Remove
type KeyRequest struct {
	MapName string `protobuf:"bytes,1,opt,name=map_name,json=mapName,proto3" json:"map_name,omitempty"`
	Key     []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *KeyRequest) Reset()         { *m = KeyRequest{} }
func (m *KeyRequest) String() string { return proto.CompactTextString(m) }
func (*KeyRequest) ProtoMessage()    {}

type BinaryResponse struct {
	ResponseCode int32  `protobuf:"varint,1,opt,name=response_code,json=responseCode,proto3" json:"response_code,omitempty"`
	Value        []byte `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *BinaryResponse) Reset()         { *m = BinaryResponse{} }
func (m *BinaryResponse) String() string { return proto.CompactTextString(m) }
func (*BinaryResponse) ProtoMessage()    {}

// RecordRequest carries one record for Put, Insert and Update
type RecordRequest struct {
	MapName string `protobuf:"bytes,1,opt,name=map_name,json=mapName,proto3" json:"map_name,omitempty"`
	Key     []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Value   []byte `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *RecordRequest) Reset()         { *m = RecordRequest{} }
func (m *RecordRequest) String() string { return proto.CompactTextString(m) }
func (*RecordRequest) ProtoMessage()    {}

type InsertManyRequest struct {
	MapName string    `protobuf:"bytes,1,opt,name=map_name,json=mapName,proto3" json:"map_name,omitempty"`
	Records []*Record `protobuf:"bytes,2,rep,name=records,proto3" json:"records,omitempty"`
}

func (m *InsertManyRequest) Reset()         { *m = InsertManyRequest{} }
func (m *InsertManyRequest) String() string { return proto.CompactTextString(m) }
func (*InsertManyRequest) ProtoMessage()    {}
