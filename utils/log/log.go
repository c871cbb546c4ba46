package log

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type key int

const (
	contextKey key = iota
	loggerKey  key = iota
)

// New builds a logger that writes to stderr at the given level.
// format is either "json" or "console".
func New(level string, format string) (*zap.Logger, error) {
	atom := zap.NewAtomicLevel()

	if err := atom.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("could not parse log level %q: %w", level, err)
	}

	var encoder zapcore.Encoder

	switch format {
	case "json", "":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console":
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(os.Stderr),
		atom,
	)), nil
}

// WithContext enriches the logger with fields from the context
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	return logger.With(Fields(ctx)...)
}

// WithFields adds log fields to the context. Contexts derived
// from the same parent never see each other's fields.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	parent := Fields(ctx)
	all := make([]zap.Field, 0, len(parent)+len(fields))
	all = append(all, parent...)
	all = append(all, fields...)

	return context.WithValue(ctx, contextKey, all)
}

// Fields extracts log fields from the context
func Fields(ctx context.Context) []zap.Field {
	rawFields := ctx.Value(contextKey)

	if rawFields == nil {
		return []zap.Field{}
	}

	fields, ok := rawFields.([]zap.Field)

	if !ok {
		return []zap.Field{}
	}

	return fields
}

// WithLogger attaches a request logger to the context.
// The logger should already carry the context's fields.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the request logger attached to
// the context or nil if there is none
func Logger(ctx context.Context) *zap.Logger {
	logger, _ := ctx.Value(loggerKey).(*zap.Logger)

	return logger
}

// LoggerFromContext returns the request logger attached to the
// context. Without one it falls back to defaultLogger enriched
// with the context's fields.
func LoggerFromContext(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if logger := Logger(ctx); logger != nil {
		return logger
	}

	return WithContext(ctx, defaultLogger)
}
