package grpc

import (
	"errors"
	"fmt"
	"net"

	"github.com/jrife/mapkeeper/transport/frontends"
	"github.com/jrife/mapkeeper/transport/mapkeeperpb"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// OptionMaxMessageSize sets the largest message in
// bytes the server accepts or sends
const OptionMaxMessageSize = "max_message_size"

var _ frontends.MapKeeperFrontend = (*Frontend)(nil)

// Frontend is an implementation of
// MapKeeperFrontend for the gRPC protocol
type Frontend struct {
	logger     *zap.Logger
	grpcServer *grpc.Server
}

// Init initializes the frontend
func (frontend *Frontend) Init(options frontends.Options) error {
	if options.Server == nil {
		return fmt.Errorf("a server is required")
	}

	frontend.logger = options.Logger

	if frontend.logger == nil {
		frontend.logger = zap.L()
	}

	serverOptions := []grpc.ServerOption{
		grpc.UnaryInterceptor(frontends.UnaryInterceptor(options)),
	}

	if rawSize, ok := options.Options[OptionMaxMessageSize]; ok {
		size, ok := rawSize.(int)

		if !ok || size <= 0 {
			return fmt.Errorf("%s must be a positive int, got %#v", OptionMaxMessageSize, rawSize)
		}

		serverOptions = append(serverOptions, grpc.MaxRecvMsgSize(size), grpc.MaxSendMsgSize(size))
	}

	frontend.grpcServer = grpc.NewServer(serverOptions...)
	mapkeeperpb.RegisterMapKeeperServer(frontend.grpcServer, frontends.NewServer(options.Server))

	return nil
}

// Listen accepts connections from this listener
func (frontend *Frontend) Listen(listener net.Listener) error {
	frontend.logger.Info("serving gRPC", zap.String("address", listener.Addr().String()))

	if err := frontend.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("could not serve gRPC: %w", err)
	}

	return nil
}

// Stop stops accepting connections from listeners and causes
// all calls to Listen to return. In-flight requests finish first.
func (frontend *Frontend) Stop() error {
	frontend.grpcServer.GracefulStop()

	return nil
}
