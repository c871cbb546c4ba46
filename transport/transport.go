package transport

import (
	"context"

	"github.com/jrife/mapkeeper/mapkeeper"
)

var _ MapKeeperServer = (*mapkeeper.Service)(nil)

// MapKeeperServer describes an interface
// that will be passed to each type of
// frontend. Each frontend provides support
// for a different type of protocol. The
// idea here is to decouple the inner
// workings of a mapkeeper server from the
// protocol that clients use to reach it
type MapKeeperServer interface {
	Ping(ctx context.Context) mapkeeper.ResponseCode
	AddMap(ctx context.Context, name string) mapkeeper.ResponseCode
	DropMap(ctx context.Context, name string) mapkeeper.ResponseCode
	ListMaps(ctx context.Context) (mapkeeper.ResponseCode, []string)
	Scan(ctx context.Context, request mapkeeper.ScanRequest) (mapkeeper.ResponseCode, []mapkeeper.Record)
	Get(ctx context.Context, name string, key []byte) (mapkeeper.ResponseCode, []byte)
	Put(ctx context.Context, name string, key []byte, value []byte) mapkeeper.ResponseCode
	Insert(ctx context.Context, name string, key []byte, value []byte) mapkeeper.ResponseCode
	InsertMany(ctx context.Context, name string, records []mapkeeper.Record) mapkeeper.ResponseCode
	Update(ctx context.Context, name string, key []byte, value []byte) mapkeeper.ResponseCode
	Remove(ctx context.Context, name string, key []byte) mapkeeper.ResponseCode
}

// MapKeeperClient describes the interface
// for clients of a mapkeeper server. It
// mirrors MapKeeperServer but every call
// can also fail at the transport level.
type MapKeeperClient interface {
	Ping(ctx context.Context) (mapkeeper.ResponseCode, error)
	AddMap(ctx context.Context, name string) (mapkeeper.ResponseCode, error)
	DropMap(ctx context.Context, name string) (mapkeeper.ResponseCode, error)
	ListMaps(ctx context.Context) (mapkeeper.ResponseCode, []string, error)
	Scan(ctx context.Context, request mapkeeper.ScanRequest) (mapkeeper.ResponseCode, []mapkeeper.Record, error)
	Get(ctx context.Context, name string, key []byte) (mapkeeper.ResponseCode, []byte, error)
	Put(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error)
	Insert(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error)
	InsertMany(ctx context.Context, name string, records []mapkeeper.Record) (mapkeeper.ResponseCode, error)
	Update(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error)
	Remove(ctx context.Context, name string, key []byte) (mapkeeper.ResponseCode, error)
	Close() error
}
