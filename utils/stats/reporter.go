package stats

import (
	"time"

	"github.com/RussellLuo/timingwheel"
	"go.uber.org/zap"
)

// every fires at a fixed interval
type every time.Duration

func (interval every) Next(prev time.Time) time.Time {
	return prev.Add(time.Duration(interval))
}

// Every calls fn on the wheel once per interval until
// the returned timer is stopped
func Every(wheel *timingwheel.TimingWheel, interval time.Duration, fn func()) *timingwheel.Timer {
	return wheel.ScheduleFunc(every(interval), fn)
}

// Pool is a worker pool whose usage is reported
type Pool interface {
	Size() int
	Running() int
}

// ReporterConfig configures a Reporter
type ReporterConfig struct {
	Logger   *zap.Logger
	Recorder *Recorder
	// Workers is optional
	Workers  Pool
	Wheel    *timingwheel.TimingWheel
	Interval time.Duration
}

// Reporter periodically logs the
// contents of a Recorder
type Reporter struct {
	logger   *zap.Logger
	recorder *Recorder
	workers  Pool
	wheel    *timingwheel.TimingWheel
	interval time.Duration
	timer    *timingwheel.Timer
}

// NewReporter creates a reporter. It does nothing
// until Start is called.
func NewReporter(config ReporterConfig) *Reporter {
	reporter := &Reporter{
		logger:   config.Logger,
		recorder: config.Recorder,
		workers:  config.Workers,
		wheel:    config.Wheel,
		interval: config.Interval,
	}

	if reporter.logger == nil {
		reporter.logger = zap.L()
	}

	return reporter
}

// Start schedules the report on the wheel
func (reporter *Reporter) Start() {
	reporter.timer = Every(reporter.wheel, reporter.interval, reporter.Report)
}

// Stop cancels any future reports
func (reporter *Reporter) Stop() {
	if reporter.timer != nil {
		reporter.timer.Stop()
	}
}

// Report logs one line per operation and resets
// the peak latencies
func (reporter *Reporter) Report() {
	if reporter.workers != nil {
		reporter.logger.Info("worker stats",
			zap.Int("running", reporter.workers.Running()),
			zap.Int("size", reporter.workers.Size()),
		)
	}

	for _, snapshot := range reporter.recorder.Snapshot() {
		reporter.logger.Info("operation stats",
			zap.String("operation", snapshot.Operation),
			zap.Uint64("calls", snapshot.Calls),
			zap.Uint64("errors", snapshot.Errors),
			zap.Duration("average", snapshot.Average),
			zap.Duration("max", snapshot.Max),
		)
	}

	reporter.recorder.Reset()
}
