package stats_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RussellLuo/timingwheel"
	"github.com/jrife/mapkeeper/utils/stats"
	"github.com/jrife/mapkeeper/utils/workers"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	recorder := stats.NewRecorder(2)

	recorder.Observe("Get", 10*time.Millisecond, false)
	recorder.Observe("Get", 20*time.Millisecond, true)
	recorder.Observe("Get", 30*time.Millisecond, false)
	recorder.Observe("Put", time.Millisecond, false)

	snapshots := recorder.Snapshot()

	require.Len(t, snapshots, 2)
	require.Equal(t, "Get", snapshots[0].Operation)
	require.Equal(t, uint64(3), snapshots[0].Calls)
	require.Equal(t, uint64(1), snapshots[0].Errors)
	require.Equal(t, 25*time.Millisecond, snapshots[0].Average)
	require.Equal(t, 30*time.Millisecond, snapshots[0].Max)
	require.Equal(t, "Put", snapshots[1].Operation)

	recorder.Reset()

	require.Equal(t, time.Duration(0), recorder.Snapshot()[0].Max)
	require.Equal(t, uint64(3), recorder.Snapshot()[0].Calls)
}

func TestRecorderConcurrent(t *testing.T) {
	recorder := stats.NewRecorder(10)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				recorder.Observe("Scan", time.Microsecond, false)
			}
		}()
	}

	wg.Wait()

	require.Equal(t, uint64(800), recorder.Snapshot()[0].Calls)
}

func TestReporter(t *testing.T) {
	wheel := timingwheel.NewTimingWheel(time.Millisecond, 20)
	wheel.Start()
	defer wheel.Stop()

	core, logs := observer.New(zapcore.InfoLevel)
	recorder := stats.NewRecorder(5)
	recorder.Observe("Ping", time.Millisecond, false)

	reporter := stats.NewReporter(stats.ReporterConfig{
		Logger:   zap.New(core),
		Recorder: recorder,
		Wheel:    wheel,
		Interval: 5 * time.Millisecond,
	})

	reporter.Start()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("operation stats").Len() >= 2
	}, time.Second, time.Millisecond)

	reporter.Stop()

	entry := logs.FilterMessage("operation stats").All()[0]
	require.Equal(t, "Ping", entry.ContextMap()["operation"])
}

func TestReporterWorkers(t *testing.T) {
	pool, err := workers.New(3)
	require.NoError(t, err)
	defer pool.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	reporter := stats.NewReporter(stats.ReporterConfig{
		Logger:   zap.New(core),
		Recorder: stats.NewRecorder(5),
		Workers:  pool,
	})

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- pool.Do(context.Background(), func() {
			close(started)
			<-release
		})
	}()

	<-started
	reporter.Report()
	close(release)
	require.NoError(t, <-done)

	entries := logs.FilterMessage("worker stats").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].ContextMap()["running"])
	require.Equal(t, int64(3), entries[0].ContextMap()["size"])
}
