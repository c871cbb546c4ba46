package frontends

import (
	"context"

	"github.com/jrife/mapkeeper/mapkeeper"
	"github.com/jrife/mapkeeper/transport"
	"github.com/jrife/mapkeeper/transport/mapkeeperpb"
)

var _ mapkeeperpb.MapKeeperServer = (*Server)(nil)

// Server implements the wire-level service
// on top of a MapKeeperServer. It only
// translates messages. Result codes pass
// through untouched and it never returns
// an error of its own.
type Server struct {
	server transport.MapKeeperServer
}

// NewServer wraps server
func NewServer(server transport.MapKeeperServer) *Server {
	return &Server{server: server}
}

func codeResponse(code mapkeeper.ResponseCode) *mapkeeperpb.ResponseCodeResponse {
	return &mapkeeperpb.ResponseCodeResponse{ResponseCode: int32(code)}
}

func (s *Server) Ping(ctx context.Context, req *mapkeeperpb.PingRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.Ping(ctx)

	return codeResponse(code), nil
}

func (s *Server) AddMap(ctx context.Context, req *mapkeeperpb.MapRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.AddMap(ctx, req.MapName)

	return codeResponse(code), nil
}

func (s *Server) DropMap(ctx context.Context, req *mapkeeperpb.MapRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.DropMap(ctx, req.MapName)

	return codeResponse(code), nil
}

func (s *Server) ListMaps(ctx context.Context, req *mapkeeperpb.ListMapsRequest) (*mapkeeperpb.StringListResponse, error) {
	code, names := s.server.ListMaps(ctx)

	return &mapkeeperpb.StringListResponse{ResponseCode: int32(code), Values: names}, nil
}

func (s *Server) Scan(ctx context.Context, req *mapkeeperpb.ScanRequest) (*mapkeeperpb.RecordListResponse, error) {
	code, records := s.server.Scan(ctx, req.Request())

	return &mapkeeperpb.RecordListResponse{ResponseCode: int32(code), Records: mapkeeperpb.NewRecords(records)}, nil
}

func (s *Server) Get(ctx context.Context, req *mapkeeperpb.KeyRequest) (*mapkeeperpb.BinaryResponse, error) {
	code, value := s.server.Get(ctx, req.MapName, req.Key)

	return &mapkeeperpb.BinaryResponse{ResponseCode: int32(code), Value: value}, nil
}

func (s *Server) Put(ctx context.Context, req *mapkeeperpb.RecordRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.Put(ctx, req.MapName, req.Key, req.Value)

	return codeResponse(code), nil
}

func (s *Server) Insert(ctx context.Context, req *mapkeeperpb.RecordRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.Insert(ctx, req.MapName, req.Key, req.Value)

	return codeResponse(code), nil
}

func (s *Server) InsertMany(ctx context.Context, req *mapkeeperpb.InsertManyRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.InsertMany(ctx, req.MapName, mapkeeperpb.ToRecords(req.Records))

	return codeResponse(code), nil
}

func (s *Server) Update(ctx context.Context, req *mapkeeperpb.RecordRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.Update(ctx, req.MapName, req.Key, req.Value)

	return codeResponse(code), nil
}

func (s *Server) Remove(ctx context.Context, req *mapkeeperpb.KeyRequest) (*mapkeeperpb.ResponseCodeResponse, error) {
	code := s.server.Remove(ctx, req.MapName, req.Key)

	return codeResponse(code), nil
}
