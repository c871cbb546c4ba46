package mapkeeperpb

import (
	"context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mapkeeper.MapKeeper"

// MapKeeperClient is the client API for the MapKeeper service
type MapKeeperClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	AddMap(ctx context.Context, in *MapRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	DropMap(ctx context.Context, in *MapRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	ListMaps(ctx context.Context, in *ListMapsRequest, opts ...grpc.CallOption) (*StringListResponse, error)
	Scan(ctx context.Context, in *ScanRequest, opts ...grpc.CallOption) (*RecordListResponse, error)
	Get(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*BinaryResponse, error)
	Put(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	Insert(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	InsertMany(ctx context.Context, in *InsertManyRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	Update(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
	Remove(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error)
}

type mapKeeperClient struct {
	cc grpc.ClientConnInterface
}

// NewMapKeeperClient creates a client that issues calls over cc
func NewMapKeeperClient(cc grpc.ClientConnInterface) MapKeeperClient {
	return &mapKeeperClient{cc}
}

func (c *mapKeeperClient) invoke(ctx context.Context, method string, in interface{}, out interface{}, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *mapKeeperClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "Ping", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) AddMap(ctx context.Context, in *MapRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "AddMap", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) DropMap(ctx context.Context, in *MapRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "DropMap", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) ListMaps(ctx context.Context, in *ListMapsRequest, opts ...grpc.CallOption) (*StringListResponse, error) {
	out := new(StringListResponse)

	if err := c.invoke(ctx, "ListMaps", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Scan(ctx context.Context, in *ScanRequest, opts ...grpc.CallOption) (*RecordListResponse, error) {
	out := new(RecordListResponse)

	if err := c.invoke(ctx, "Scan", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Get(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*BinaryResponse, error) {
	out := new(BinaryResponse)

	if err := c.invoke(ctx, "Get", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Put(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "Put", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Insert(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "Insert", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) InsertMany(ctx context.Context, in *InsertManyRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "InsertMany", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Update(ctx context.Context, in *RecordRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "Update", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *mapKeeperClient) Remove(ctx context.Context, in *KeyRequest, opts ...grpc.CallOption) (*ResponseCodeResponse, error) {
	out := new(ResponseCodeResponse)

	if err := c.invoke(ctx, "Remove", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// MapKeeperServer is the server API for the MapKeeper service
type MapKeeperServer interface {
	Ping(context.Context, *PingRequest) (*ResponseCodeResponse, error)
	AddMap(context.Context, *MapRequest) (*ResponseCodeResponse, error)
	DropMap(context.Context, *MapRequest) (*ResponseCodeResponse, error)
	ListMaps(context.Context, *ListMapsRequest) (*StringListResponse, error)
	Scan(context.Context, *ScanRequest) (*RecordListResponse, error)
	Get(context.Context, *KeyRequest) (*BinaryResponse, error)
	Put(context.Context, *RecordRequest) (*ResponseCodeResponse, error)
	Insert(context.Context, *RecordRequest) (*ResponseCodeResponse, error)
	InsertMany(context.Context, *InsertManyRequest) (*ResponseCodeResponse, error)
	Update(context.Context, *RecordRequest) (*ResponseCodeResponse, error)
	Remove(context.Context, *KeyRequest) (*ResponseCodeResponse, error)
}

// UnimplementedMapKeeperServer can be embedded to have forward compatible implementations
type UnimplementedMapKeeperServer struct {
}

func (*UnimplementedMapKeeperServer) Ping(ctx context.Context, req *PingRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (*UnimplementedMapKeeperServer) AddMap(ctx context.Context, req *MapRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddMap not implemented")
}
func (*UnimplementedMapKeeperServer) DropMap(ctx context.Context, req *MapRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DropMap not implemented")
}
func (*UnimplementedMapKeeperServer) ListMaps(ctx context.Context, req *ListMapsRequest) (*StringListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMaps not implemented")
}
func (*UnimplementedMapKeeperServer) Scan(ctx context.Context, req *ScanRequest) (*RecordListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Scan not implemented")
}
func (*UnimplementedMapKeeperServer) Get(ctx context.Context, req *KeyRequest) (*BinaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (*UnimplementedMapKeeperServer) Put(ctx context.Context, req *RecordRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Put not implemented")
}
func (*UnimplementedMapKeeperServer) Insert(ctx context.Context, req *RecordRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (*UnimplementedMapKeeperServer) InsertMany(ctx context.Context, req *InsertManyRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method InsertMany not implemented")
}
func (*UnimplementedMapKeeperServer) Update(ctx context.Context, req *RecordRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Update not implemented")
}
func (*UnimplementedMapKeeperServer) Remove(ctx context.Context, req *KeyRequest) (*ResponseCodeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Remove not implemented")
}

// RegisterMapKeeperServer registers srv with s
func RegisterMapKeeperServer(s *grpc.Server, srv MapKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodDesc handler for one method. newRequest
// allocates the request message and call forwards it to the server.
func unaryHandler(method string, newRequest func() interface{}, call func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newRequest()

			if err := dec(in); err != nil {
				return nil, err
			}

			if interceptor == nil {
				return call(srv.(MapKeeperServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(MapKeeperServer), ctx, req)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the MapKeeper service. Frontends other than
// gRPC may dispatch through its method handlers as well.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MapKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Ping", func() interface{} { return new(PingRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Ping(ctx, req.(*PingRequest))
		}),
		unaryHandler("AddMap", func() interface{} { return new(MapRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.AddMap(ctx, req.(*MapRequest))
		}),
		unaryHandler("DropMap", func() interface{} { return new(MapRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DropMap(ctx, req.(*MapRequest))
		}),
		unaryHandler("ListMaps", func() interface{} { return new(ListMapsRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListMaps(ctx, req.(*ListMapsRequest))
		}),
		unaryHandler("Scan", func() interface{} { return new(ScanRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Scan(ctx, req.(*ScanRequest))
		}),
		unaryHandler("Get", func() interface{} { return new(KeyRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Get(ctx, req.(*KeyRequest))
		}),
		unaryHandler("Put", func() interface{} { return new(RecordRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Put(ctx, req.(*RecordRequest))
		}),
		unaryHandler("Insert", func() interface{} { return new(RecordRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Insert(ctx, req.(*RecordRequest))
		}),
		unaryHandler("InsertMany", func() interface{} { return new(InsertManyRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.InsertMany(ctx, req.(*InsertManyRequest))
		}),
		unaryHandler("Update", func() interface{} { return new(RecordRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Update(ctx, req.(*RecordRequest))
		}),
		unaryHandler("Remove", func() interface{} { return new(KeyRequest) }, func(srv MapKeeperServer, ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Remove(ctx, req.(*KeyRequest))
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mapkeeper.proto",
}

// Method returns the description of the named method
func Method(name string) (grpc.MethodDesc, bool) {
	for _, method := range ServiceDesc.Methods {
		if method.MethodName == name {
			return method, true
		}
	}

	return grpc.MethodDesc{}, false
}
