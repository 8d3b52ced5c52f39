package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine count (runtime metrics) and heap and stack usage at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// Sample is one reading of the runtime counters.
type Sample struct {
	Goroutines uint64
	HeapAlloc  uint64
	HeapSys    uint64
	StackInuse uint64
	NumGC      uint32
}

// Read takes a sample of the runtime counters.
func Read() Sample {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Sample{HeapAlloc: ms.HeapAlloc, HeapSys: ms.HeapSys, StackInuse: ms.StackInuse, NumGC: ms.NumGC}
	if samples[0].Value.Kind() == metrics.KindUint64 {
		s.Goroutines = samples[0].Value.Uint64()
	}
	return s
}

// Attrs renders the sample as log attributes with human readable sizes.
func (s Sample) Attrs() []any {
	return []any{
		slog.Uint64("goroutines", s.Goroutines),
		slog.String("heap_alloc", humanize.Bytes(s.HeapAlloc)),
		slog.String("heap_sys", humanize.Bytes(s.HeapSys)),
		slog.String("stack_inuse", humanize.Bytes(s.StackInuse)),
		slog.Any("num_gc", s.NumGC),
	}
}

// StartRuntimeLogger launches a ticker that logs runtime counters until ctx is done.
// It is lightweight; disable by running without the debug flag.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		return
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Debug("runtime", Read().Attrs()...)
			}
		}
	}()
}
