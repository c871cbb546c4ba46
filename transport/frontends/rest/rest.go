package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/jrife/mapkeeper/transport/frontends"
	"github.com/jrife/mapkeeper/transport/mapkeeperpb"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// PathPrefix is prepended to every method name.
// Calls look like POST /v1/Get.
const PathPrefix = "/v1/"

var _ frontends.MapKeeperFrontend = (*Frontend)(nil)
var _ http.Handler = (*Frontend)(nil)

// Frontend is an implementation of
// MapKeeperFrontend for JSON over HTTP.
// Request and response bodies use the
// protobuf JSON mapping of the wire
// messages. Bytes are base64 encoded.
type Frontend struct {
	logger      *zap.Logger
	server      *frontends.Server
	interceptor grpc.UnaryServerInterceptor
	marshaler   *runtime.JSONPb
	httpServer  *http.Server
	stopOnce    sync.Once
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

	frontend.server = frontends.NewServer(options.Server)
	frontend.interceptor = frontends.UnaryInterceptor(options)
	frontend.marshaler = &runtime.JSONPb{OrigName: true, EmitDefaults: true}
	frontend.httpServer = &http.Server{Handler: frontend}

	return nil
}

// Listen accepts connections from this listener
func (frontend *Frontend) Listen(listener net.Listener) error {
	frontend.logger.Info("serving REST", zap.String("address", listener.Addr().String()))

	if err := frontend.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not serve REST: %w", err)
	}

	return nil
}

// Stop stops accepting connections from listeners and causes
// all calls to Listen to return. In-flight requests finish first.
func (frontend *Frontend) Stop() error {
	var err error

	frontend.stopOnce.Do(func() {
		err = frontend.httpServer.Shutdown(context.Background())
	})

	return err
}

// ServeHTTP dispatches a request to the method named by its path
func (frontend *Frontend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, PathPrefix) {
		frontend.writeError(w, http.StatusNotFound, fmt.Errorf("no such path %s", r.URL.Path))

		return
	}

	name := strings.TrimPrefix(r.URL.Path, PathPrefix)
	method, ok := mapkeeperpb.Method(name)

	if !ok {
		frontend.writeError(w, http.StatusNotFound, fmt.Errorf("no such method %s", name))

		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		frontend.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))

		return
	}

	var decodeErr error

	dec := func(v interface{}) error {
		// An empty body decodes to the zero message
		if err := frontend.marshaler.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
			decodeErr = err

			return err
		}

		return nil
	}

	resp, err := method.Handler(frontend.server, r.Context(), dec, frontend.interceptor)

	if decodeErr != nil {
		frontend.writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode %s request: %w", name, decodeErr))

		return
	}

	if err != nil {
		frontend.writeError(w, runtime.HTTPStatusFromCode(status.Code(err)), err)

		return
	}

	body, err := frontend.marshaler.Marshal(resp)

	if err != nil {
		frontend.writeError(w, http.StatusInternalServerError, fmt.Errorf("could not encode %s response: %w", name, err))

		return
	}

	w.Header().Set("Content-Type", frontend.marshaler.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (frontend *Frontend) writeError(w http.ResponseWriter, code int, err error) {
	frontend.logger.Debug("rejected request", zap.Int("status", code), zap.Error(err))

	body, marshalErr := frontend.marshaler.Marshal(map[string]string{"error": err.Error()})

	if marshalErr != nil {
		http.Error(w, err.Error(), code)

		return
	}

	w.Header().Set("Content-Type", frontend.marshaler.ContentType())
	w.WriteHeader(code)
	w.Write(body)
}
