package sim

import (
	"time"

	metrics "github.com/armon/go-metrics"
)

// MetricsCollector gathers the counters emitted by the IBC message server
// during a run.
type MetricsCollector struct {
	sink *metrics.InmemSink
}

// NewMetricsCollector installs an in-memory sink as the global metrics
// sink. The runtime metrics of the process are not collected.
func NewMetricsCollector() (*MetricsCollector, error) {
	sink := metrics.NewInmemSink(time.Minute, time.Hour)

	cfg := metrics.DefaultConfig("")
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false

	if _, err := metrics.NewGlobal(cfg, sink); err != nil {
		return nil, err
	}
	return &MetricsCollector{sink: sink}, nil
}

// Counters returns the total of every counter across all retained
// intervals, keyed by metric name. Labels are dropped.
func (mc *MetricsCollector) Counters() map[string]int64 {
	counters := make(map[string]int64)
	for _, interval := range mc.sink.Data() {
		interval.RLock()
		for _, sample := range interval.Counters {
			counters[sample.Name] += int64(sample.Sum)
		}
		interval.RUnlock()
	}
	return counters
}
