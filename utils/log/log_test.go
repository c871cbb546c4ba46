package log_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/mapkeeper/utils/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	ctx := log.WithFields(context.Background(), zap.String("request", "r1"))
	ctx = log.WithFields(ctx, zap.String("peer", "p1"))

	log.WithContext(ctx, logger).Info("hello")

	entries := logs.All()

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()

	if fields["request"] != "r1" || fields["peer"] != "p1" {
		t.Fatalf("expected context fields on the entry, got %#v", fields)
	}
}

func TestWithFieldsSiblings(t *testing.T) {
	// Growing the parent one field at a time leaves spare capacity behind it
	parent := log.WithFields(context.Background(), zap.String("request", "r1"))
	parent = log.WithFields(parent, zap.String("method", "Get"))
	parent = log.WithFields(parent, zap.String("operation", "Get"))
	a := log.WithFields(parent, zap.String("map", "a"))
	b := log.WithFields(parent, zap.String("map", "b"))

	if diff := cmp.Diff([]string{"request", "method", "operation", "map"}, keys(log.Fields(a))); diff != "" {
		t.Fatal(diff)
	}

	if fields := log.Fields(a); fields[3].String != "a" {
		t.Fatalf("expected map field a, got %q", fields[3].String)
	}

	if fields := log.Fields(b); fields[3].String != "b" {
		t.Fatalf("expected map field b, got %q", fields[3].String)
	}

	if diff := cmp.Diff(3, len(log.Fields(parent))); diff != "" {
		t.Fatal(diff)
	}
}

func keys(fields []zap.Field) []string {
	result := make([]string, len(fields))

	for i, field := range fields {
		result[i] = field.Key
	}

	return result
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defaultLogger := zap.New(core)
	ctx := log.WithFields(context.Background(), zap.String("request", "r1"))

	if log.Logger(ctx) != nil {
		t.Fatalf("expected no request logger")
	}

	log.LoggerFromContext(ctx, defaultLogger).Info("fallback")

	requestCore, requestLogs := observer.New(zapcore.DebugLevel)
	requestLogger := zap.New(requestCore).With(zap.String("request", "r2"))
	log.LoggerFromContext(log.WithLogger(ctx, requestLogger), defaultLogger).Info("attached")

	if diff := cmp.Diff(1, logs.Len()); diff != "" {
		t.Fatal(diff)
	}

	if diff := cmp.Diff("r1", logs.All()[0].ContextMap()["request"]); diff != "" {
		t.Fatal(diff)
	}

	if diff := cmp.Diff(1, requestLogs.Len()); diff != "" {
		t.Fatal(diff)
	}

	// The attached logger is used as is without the context's fields again
	if diff := cmp.Diff(1, len(requestLogs.All()[0].Context)); diff != "" {
		t.Fatal(diff)
	}
}

func TestNew(t *testing.T) {
	testCases := map[string]struct {
		level  string
		format string
		err    bool
	}{
		"json-info":      {level: "info", format: "json"},
		"console-debug":  {level: "debug", format: "console"},
		"default-format": {level: "warn", format: ""},
		"bad-level":      {level: "loud", format: "json", err: true},
		"bad-format":     {level: "info", format: "xml", err: true},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			logger, err := log.New(testCase.level, testCase.format)

			if testCase.err {
				if err == nil {
					t.Fatalf("expected an error")
				}

				return
			}

			if err != nil {
				t.Fatalf("expected err to be nil, got %#v", err)
			}

			if logger == nil {
				t.Fatalf("expected a logger")
			}
		})
	}
}
