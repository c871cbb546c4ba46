package clients

import (
	"context"
	"fmt"

	"github.com/jrife/mapkeeper/mapkeeper"
	"github.com/jrife/mapkeeper/transport"
	"github.com/jrife/mapkeeper/transport/mapkeeperpb"
	"google.golang.org/grpc"
)

var _ transport.MapKeeperClient = (*Client)(nil)

// Client is a gRPC client
// for a mapkeeper server
type Client struct {
	conn   *grpc.ClientConn
	client mapkeeperpb.MapKeeperClient
}

// Dial connects to a mapkeeper server at address. The
// connection is insecure unless options say otherwise.
func Dial(ctx context.Context, address string, options ...grpc.DialOption) (*Client, error) {
	options = append([]grpc.DialOption{grpc.WithInsecure()}, options...)
	conn, err := grpc.DialContext(ctx, address, options...)

	if err != nil {
		return nil, fmt.Errorf("could not dial %s: %w", address, err)
	}

	return NewClient(conn), nil
}

// NewClient creates a client that uses conn. Closing the
// client closes conn.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, client: mapkeeperpb.NewMapKeeperClient(conn)}
}

// Close closes the underlying connection
func (client *Client) Close() error {
	return client.conn.Close()
}

func (client *Client) Ping(ctx context.Context) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.Ping(ctx, &mapkeeperpb.PingRequest{})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) AddMap(ctx context.Context, name string) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.AddMap(ctx, &mapkeeperpb.MapRequest{MapName: name})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) DropMap(ctx context.Context, name string) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.DropMap(ctx, &mapkeeperpb.MapRequest{MapName: name})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) ListMaps(ctx context.Context) (mapkeeper.ResponseCode, []string, error) {
	resp, err := client.client.ListMaps(ctx, &mapkeeperpb.ListMapsRequest{})

	if err != nil {
		return mapkeeper.Error, nil, err
	}

	return resp.Code(), resp.Values, nil
}

func (client *Client) Scan(ctx context.Context, request mapkeeper.ScanRequest) (mapkeeper.ResponseCode, []mapkeeper.Record, error) {
	resp, err := client.client.Scan(ctx, mapkeeperpb.NewScanRequest(request))

	if err != nil {
		return mapkeeper.Error, nil, err
	}

	return resp.Code(), mapkeeperpb.ToRecords(resp.Records), nil
}

func (client *Client) Get(ctx context.Context, name string, key []byte) (mapkeeper.ResponseCode, []byte, error) {
	resp, err := client.client.Get(ctx, &mapkeeperpb.KeyRequest{MapName: name, Key: key})

	if err != nil {
		return mapkeeper.Error, nil, err
	}

	return resp.Code(), resp.Value, nil
}

func (client *Client) Put(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.Put(ctx, &mapkeeperpb.RecordRequest{MapName: name, Key: key, Value: value})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) Insert(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.Insert(ctx, &mapkeeperpb.RecordRequest{MapName: name, Key: key, Value: value})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) InsertMany(ctx context.Context, name string, records []mapkeeper.Record) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.InsertMany(ctx, &mapkeeperpb.InsertManyRequest{MapName: name, Records: mapkeeperpb.NewRecords(records)})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) Update(ctx context.Context, name string, key []byte, value []byte) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.Update(ctx, &mapkeeperpb.RecordRequest{MapName: name, Key: key, Value: value})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}

func (client *Client) Remove(ctx context.Context, name string, key []byte) (mapkeeper.ResponseCode, error) {
	resp, err := client.client.Remove(ctx, &mapkeeperpb.KeyRequest{MapName: name, Key: key})

	if err != nil {
		return mapkeeper.Error, err
	}

	return resp.Code(), nil
}
