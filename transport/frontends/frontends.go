package frontends

import (
	"net"

	"github.com/jrife/mapkeeper/transport"
	"github.com/jrife/mapkeeper/utils/stats"
	"github.com/jrife/mapkeeper/utils/workers"
	"go.uber.org/zap"
)

// Options define standard options
// passed to frontends during initialization
type Options struct {
	Server transport.MapKeeperServer
	Logger *zap.Logger
	// Workers bounds the number of requests
	// being served at once. Requests run on
	// the calling goroutine if it is nil.
	Workers *workers.Pool
	// Stats receives the latency of every
	// request if it is set.
	Stats   *stats.Recorder
	Options map[string]interface{}
}

// MapKeeperFrontend describes an interface
// that every mapkeeper frontend must
// implement.
type MapKeeperFrontend interface {
	// Init initializes the frontend. Use this
	// to pass configuration options to the frontend
	Init(options Options) error
	// Listen tells this frontend to start listening
	// using this listener. A frontend may be asked
	// to listen on different interfaces, such as a TCP
	// socket and a Unix socket. It must accept
	// one or more calls to Listen. Listen must block
	// as long as it is actively accepting connections
	// from this listener. If the listener returns an
	// error Listen must return an error and return. If
	// Listen returns as a result of Stop being called it
	// must return nil.
	Listen(listener net.Listener) error
	// Stop tells this frontend to stop processing all
	// requests and stop listening to all listeners.
	// Closing the listeners remains the caller's
	// responsibility even if the frontend happens to
	// close them while stopping.
	Stop() error
}
