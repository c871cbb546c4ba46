package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/jrife/mapkeeper/config"
	"github.com/jrife/mapkeeper/mapkeeper"
	"github.com/jrife/mapkeeper/storage/kv"
	"github.com/jrife/mapkeeper/storage/kv/plugins"
	"github.com/jrife/mapkeeper/transport/frontends"
	grpcfrontend "github.com/jrife/mapkeeper/transport/frontends/grpc"
	"github.com/jrife/mapkeeper/transport/frontends/rest"
	"github.com/jrife/mapkeeper/utils/log"
	"github.com/jrife/mapkeeper/utils/stats"
	"github.com/jrife/mapkeeper/utils/workers"
	"go.uber.org/zap"
)

type flags struct {
	set          *flag.FlagSet
	config       string
	host         string
	port         int
	workers      int
	frontend     string
	engine       string
	dataDir      string
	noSync       bool
	syncInterval time.Duration
	logLevel     string
	logFormat    string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: flag.NewFlagSet("mapkeeperd", flag.ContinueOnError)}

	f.set.StringVar(&f.config, "config", "", "path to a YAML config file")
	f.set.StringVar(&f.host, "host", "", "address to listen on")
	f.set.IntVar(&f.port, "port", 0, "port to listen on")
	f.set.IntVar(&f.workers, "workers", 0, "number of requests served at once")
	f.set.StringVar(&f.frontend, "frontend", "", "protocol to serve: grpc or rest")
	f.set.StringVar(&f.engine, "engine", "", "storage engine: "+fmt.Sprint(plugins.Names()))
	f.set.StringVar(&f.dataDir, "data-dir", "", "data directory")
	f.set.BoolVar(&f.noSync, "no-sync", false, "skip fsync on commit and flush periodically instead")
	f.set.DurationVar(&f.syncInterval, "sync-interval", 0, "flush interval when -no-sync is set")
	f.set.StringVar(&f.logLevel, "log-level", "", "log level")
	f.set.StringVar(&f.logFormat, "log-format", "", "log format: json or console")

	if err := f.set.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}

// apply overrides c with every flag given on the command line
func (f *flags) apply(c *config.Config) {
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "host":
			c.Server.Host = f.host
		case "port":
			c.Server.Port = f.port
		case "workers":
			c.Server.Workers = f.workers
		case "frontend":
			c.Server.Frontend = f.frontend
		case "engine":
			c.Storage.Engine = f.engine
		case "data-dir":
			c.Storage.DataDir = f.dataDir
		case "no-sync":
			c.Storage.NoSync = f.noSync
		case "sync-interval":
			c.Storage.SyncInterval = f.syncInterval
		case "log-level":
			c.Logging.Level = f.logLevel
		case "log-format":
			c.Logging.Format = f.logFormat
		}
	})
}

func loadConfig(args []string) (*config.Config, error) {
	f, err := parseFlags(args)

	if err != nil {
		return nil, err
	}

	c, err := config.Load(f.config)

	if err != nil {
		return nil, err
	}

	f.apply(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

func openStore(c *config.Config) (kv.RootStore, error) {
	plugin := plugins.Plugin(c.Storage.Engine)

	if plugin == nil {
		return nil, fmt.Errorf("unknown storage engine %q, expected one of %v", c.Storage.Engine, plugins.Names())
	}

	return plugin.NewRootStore(kv.PluginOptions{
		"path":      c.Storage.DataDir,
		"page_size": c.Storage.PageSize,
		"no_sync":   c.Storage.NoSync,
		"timeout":   c.Storage.OpenTimeout,
	})
}

func newFrontend(name string) (frontends.MapKeeperFrontend, error) {
	switch name {
	case "grpc":
		return &grpcfrontend.Frontend{}, nil
	case "rest":
		return &rest.Frontend{}, nil
	}

	return nil, fmt.Errorf("unknown frontend %q", name)
}

func run(args []string) error {
	c, err := loadConfig(args)

	if err != nil {
		return err
	}

	logger, err := log.New(c.Logging.Level, c.Logging.Format)

	if err != nil {
		return err
	}

	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	store, err := openStore(c)

	if err != nil {
		return fmt.Errorf("could not open %s store: %w", c.Storage.Engine, err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("could not close store", zap.Error(err))
		}
	}()

	service, err := mapkeeper.New(mapkeeper.Config{Logger: logger, Store: store})

	if err != nil {
		return fmt.Errorf("could not start service: %w", err)
	}

	defer service.Close()

	logger.Info("opened maps", zap.Strings("maps", service.Maps()))

	pool, err := workers.New(c.Server.Workers)

	if err != nil {
		return err
	}

	defer pool.Close()

	wheel := timingwheel.NewTimingWheel(10*time.Millisecond, 100)
	wheel.Start()
	defer wheel.Stop()

	recorder := stats.NewRecorder(c.Stats.Window)

	if c.Stats.ReportInterval > 0 {
		reporter := stats.NewReporter(stats.ReporterConfig{
			Logger:   logger,
			Recorder: recorder,
			Workers:  pool,
			Wheel:    wheel,
			Interval: c.Stats.ReportInterval,
		})

		reporter.Start()
		defer reporter.Stop()
	}

	if c.Storage.NoSync {
		timer := stats.Every(wheel, c.Storage.SyncInterval, func() {
			if err := store.Sync(); err != nil {
				logger.Error("could not sync store", zap.Error(err))
			}
		})

		defer timer.Stop()
	}

	frontend, err := newFrontend(c.Server.Frontend)

	if err != nil {
		return err
	}

	if err := frontend.Init(frontends.Options{
		Server:  service,
		Logger:  logger,
		Workers: pool,
		Stats:   recorder,
	}); err != nil {
		return fmt.Errorf("could not initialize %s frontend: %w", c.Server.Frontend, err)
	}

	listener, err := net.Listen("tcp", c.Address())

	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", c.Address(), err)
	}

	defer listener.Close()

	served := make(chan error, 1)

	go func() {
		served <- frontend.Listen(listener)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		logger.Info("shutting down", zap.Stringer("signal", sig))

		if err := frontend.Stop(); err != nil {
			logger.Error("could not stop frontend", zap.Error(err))
		}

		<-served
	case err := <-served:
		if err != nil {
			return err
		}
	}

	// Flush anything a no_sync engine is still holding
	if err := store.Sync(); err != nil {
		logger.Error("could not sync store", zap.Error(err))
	}

	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
