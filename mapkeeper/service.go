package mapkeeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/utils/log"
	"go.uber.org/zap"
)

// Config contains configuration
// for a service
type Config struct {
	// Logger is used for requests whose context
	// doesn't carry a logger of its own
	Logger *zap.Logger
	Store  kv.RootStore
}

// Service exposes the maps of a root store. It is safe for
// concurrent use. Adding and dropping maps is serialized against
// every other operation. Everything else runs concurrently and
// relies on the engine for record-level atomicity.
type Service struct {
	logger   *zap.Logger
	store    kv.RootStore
	registry *registry
}

// New opens a handle for every map the store knows about and
// returns a service ready to serve requests
func New(config Config) (*Service, error) {
	service := &Service{
		logger:   config.Logger,
		store:    config.Store,
		registry: newRegistry(),
	}

	if service.logger == nil {
		service.logger = zap.L()
	}

	if service.store == nil {
		return nil, fmt.Errorf("a root store is required")
	}

	names, err := service.store.Maps()

	if err != nil {
		return nil, fmt.Errorf("could not list maps: %w", err)
	}

	for _, name := range names {
		m, status, err := service.store.Open(name, kv.OpenOptions{})

		if err != nil {
			service.Close()

			return nil, fmt.Errorf("could not open map %s: %w", name, err)
		}

		if status != kv.StatusOK {
			service.logger.Warn("map disappeared during startup", zap.String("map", name), zap.Stringer("status", status))

			continue
		}

		service.registry.handles[name] = m
		service.logger.Debug("opened map", zap.String("map", name))
	}

	return service, nil
}

func (service *Service) operationLogger(ctx context.Context, operation string, fields ...zap.Field) *zap.Logger {
	return log.LoggerFromContext(ctx, service.logger).With(append([]zap.Field{zap.String("operation", operation)}, fields...)...)
}

// Close closes every open map handle. The service must
// not be used after Close returns.
func (service *Service) Close() error {
	var errs []error

	service.registry.exclusive(func(handles map[string]kv.Map) ResponseCode {
		for name, m := range handles {
			if err := m.Close(); err != nil {
				errs = append(errs, fmt.Errorf("could not close map %s: %w", name, err))
			}

			delete(handles, name)
		}

		return Success
	})

	return errors.Join(errs...)
}

// Maps lists the names of the maps with open handles
func (service *Service) Maps() []string {
	return service.registry.names()
}

// Ping reports Success while the service is able to serve requests
func (service *Service) Ping(ctx context.Context) ResponseCode {
	service.registry.mu.RLock()
	defer service.registry.mu.RUnlock()

	return Success
}

// AddMap creates a new, empty map. It returns MapExists if a
// map with this name already exists.
func (service *Service) AddMap(ctx context.Context, name string) ResponseCode {
	logger := service.operationLogger(ctx, "AddMap", zap.String("map", name))
	logger.Debug("start")

	code := service.registry.exclusive(func(handles map[string]kv.Map) ResponseCode {
		m, status, err := service.store.Open(name, kv.OpenOptions{Create: true, Exclusive: true})

		if err != nil {
			return fail(logger, fmt.Errorf("could not create map: %w", err))
		}

		switch status {
		case kv.StatusOK:
		case kv.StatusMapExists:
			return MapExists
		default:
			return fail(logger, fmt.Errorf("unexpected status %s from exclusive create", status))
		}

		if _, ok := handles[name]; ok {
			m.Close()

			return fail(logger, invariantViolation("engine created map %s but it was already registered", name))
		}

		handles[name] = m

		return Success
	})

	logger.Debug("return", zap.Stringer("code", code))

	return code
}

// DropMap closes the map's handle and then deletes the map and
// all its records. It returns MapNotFound if there is no such map.
func (service *Service) DropMap(ctx context.Context, name string) ResponseCode {
	logger := service.operationLogger(ctx, "DropMap", zap.String("map", name))
	logger.Debug("start")

	code := service.registry.exclusive(func(handles map[string]kv.Map) ResponseCode {
		m, ok := handles[name]

		if !ok {
			return MapNotFound
		}

		// The engine refuses to remove a map with open handles
		if err := m.Close(); err != nil {
			return fail(logger, fmt.Errorf("could not close map: %w", err))
		}

		status, err := service.store.Remove(name)

		if err != nil {
			service.reopen(logger, handles, name)

			return fail(logger, fmt.Errorf("could not remove map: %w", err))
		}

		delete(handles, name)

		if status == kv.StatusNotFound {
			return fail(logger, invariantViolation("map %s was registered but the engine does not know it", name))
		}

		return Success
	})

	logger.Debug("return", zap.Stringer("code", code))

	return code
}

// reopen replaces the closed handle of a map the engine failed to
// remove. The name stays registered only if the reopen succeeds.
// Must be called with the exclusive lock held.
func (service *Service) reopen(logger *zap.Logger, handles map[string]kv.Map, name string) {
	m, status, err := service.store.Open(name, kv.OpenOptions{})

	if err != nil {
		delete(handles, name)
		fail(logger, fmt.Errorf("could not reopen map after failed remove: %w", err))

		return
	}

	if status != kv.StatusOK {
		delete(handles, name)
		fail(logger, invariantViolation("map %s vanished during a failed remove", name))

		return
	}

	handles[name] = m
}

// ListMaps lists every map known to the engine. The engine
// rather than the registry is the source of truth here.
func (service *Service) ListMaps(ctx context.Context) (ResponseCode, []string) {
	logger := service.operationLogger(ctx, "ListMaps")

	names, err := service.store.Maps()

	if err != nil {
		return fail(logger, err), nil
	}

	return Success, names
}

// Scan returns a page of records from a key range. See ScanRequest.
// It returns ScanEnded if it reached the end of the range and Success
// if it stopped early because the page filled up.
func (service *Service) Scan(ctx context.Context, request ScanRequest) (ResponseCode, []Record) {
	logger := service.operationLogger(ctx, "Scan", zap.String("map", request.Map))
	logger.Debug("start",
		zap.Stringer("order", request.Order),
		zap.Binary("start", request.StartKey),
		zap.Bool("start_inclusive", request.StartInclusive),
		zap.Binary("end", request.EndKey),
		zap.Bool("end_inclusive", request.EndInclusive),
		zap.Int("max_records", request.MaxRecords),
		zap.Int("max_bytes", request.MaxBytes),
	)

	var records []Record

	code := service.registry.shared(request.Map, func(m kv.Map) ResponseCode {
		cursor, err := m.Cursor()

		if err != nil {
			return fail(logger, fmt.Errorf("could not open cursor: %w", err))
		}

		defer cursor.Close()

		code, page, err := scan(cursor, request)

		if err != nil {
			return fail(logger, fmt.Errorf("could not scan: %w", err))
		}

		records = page

		return code
	})

	logger.Debug("return", zap.Stringer("code", code), zap.Int("records", len(records)))

	return code, records
}

// Get reads a record. It returns RecordNotFound if the key doesn't exist.
func (service *Service) Get(ctx context.Context, name string, key []byte) (ResponseCode, []byte) {
	logger := service.operationLogger(ctx, "Get", zap.String("map", name))

	var value []byte

	code := service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, v, err := get(m, key)

		if err != nil {
			return fail(logger, err)
		}

		value = v

		return code
	})

	return code, value
}

// Put writes a record, overwriting any existing value
func (service *Service) Put(ctx context.Context, name string, key []byte, value []byte) ResponseCode {
	logger := service.operationLogger(ctx, "Put", zap.String("map", name))

	return service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, err := put(m, key, value)

		if err != nil {
			return fail(logger, err)
		}

		return code
	})
}

// Insert writes a record only if its key doesn't exist yet. It
// returns RecordExists and leaves the stored value alone otherwise.
func (service *Service) Insert(ctx context.Context, name string, key []byte, value []byte) ResponseCode {
	logger := service.operationLogger(ctx, "Insert", zap.String("map", name))

	return service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, err := insert(m, key, value)

		if err != nil {
			return fail(logger, err)
		}

		return code
	})
}

// InsertMany inserts all records atomically. If any key already
// exists nothing is written and RecordExists is returned.
func (service *Service) InsertMany(ctx context.Context, name string, records []Record) ResponseCode {
	logger := service.operationLogger(ctx, "InsertMany", zap.String("map", name), zap.Int("records", len(records)))

	return service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, err := insertMany(m, records)

		if err != nil {
			return fail(logger, err)
		}

		return code
	})
}

// Update overwrites the value of an existing record. It returns
// RecordNotFound if the key doesn't exist.
func (service *Service) Update(ctx context.Context, name string, key []byte, value []byte) ResponseCode {
	logger := service.operationLogger(ctx, "Update", zap.String("map", name))

	return service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, err := update(m, key, value)

		if err != nil {
			return fail(logger, err)
		}

		return code
	})
}

// Remove deletes a record. It returns RecordNotFound if the key
// doesn't exist.
func (service *Service) Remove(ctx context.Context, name string, key []byte) ResponseCode {
	logger := service.operationLogger(ctx, "Remove", zap.String("map", name))

	return service.registry.shared(name, func(m kv.Map) ResponseCode {
		code, err := remove(m, key)

		if err != nil {
			return fail(logger, err)
		}

		return code
	})
}
