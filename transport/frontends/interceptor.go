package frontends

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jrife/mapkeeper/mapkeeper"
	"github.com/jrife/mapkeeper/utils/log"
	"github.com/jrife/mapkeeper/utils/workers"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type coded interface {
	Code() mapkeeper.ResponseCode
}

// UnaryInterceptor runs each request on the worker pool,
// attaches a logger tagged with a request id to its context
// and records its latency. Frontends that don't speak gRPC can still
// call it with a synthetic grpc.UnaryServerInfo.
func UnaryInterceptor(options Options) grpc.UnaryServerInterceptor {
	logger := options.Logger

	if logger == nil {
		logger = zap.L()
	}

	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		method := path.Base(info.FullMethod)
		ctx = log.WithFields(ctx, zap.String("request", uuid.New().String()), zap.String("method", method))
		ctx = log.WithLogger(ctx, log.WithContext(ctx, logger))
		start := time.Now()

		var resp interface{}
		var err error

		run := func() {
			resp, err = handler(ctx, req)
		}

		if options.Workers == nil {
			run()
		} else if poolErr := options.Workers.Do(ctx, run); poolErr != nil {
			log.Logger(ctx).Warn("request not served", zap.Error(poolErr))
			observe(options, method, start, true)

			return nil, poolError(poolErr)
		}

		failed := err != nil

		if c, ok := resp.(coded); ok && c.Code() == mapkeeper.Error {
			failed = true
		}

		observe(options, method, start, failed)

		return resp, err
	}
}

func observe(options Options, method string, start time.Time, failed bool) {
	if options.Stats != nil {
		options.Stats.Observe(method, time.Since(start), failed)
	}
}

func poolError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, workers.ErrClosed):
		return status.Error(codes.Unavailable, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
