package telemetry

import (
	"expvar"

	"github.com/uber-go/tally"

	"github.com/sybrenstuvel/gorsa/log"
)

// logReporter publishes metrics to a logger.
type logReporter struct {
	l log.Logger
}

// newLogReporter builds a tally.CachedStatsReporter reporting metrics to
// the given logger.
func newLogReporter(l log.Logger) tally.CachedStatsReporter {
	return logReporter{
		l: log.ForComponent(l, "metrics"),
	}
}

func (r logReporter) Capabilities() tally.Capabilities { return r }
func (r logReporter) Reporting() bool                  { return false }
func (r logReporter) Tagging() bool                    { return true }

func (r logReporter) metricLogger(name, metricType string, tags map[string]string) log.Logger {
	return log.WithTags(r.l, tags).With("metric_name", name).With("metric_type", metricType)
}

func (r logReporter) AllocateCounter(name string, tags map[string]string) tally.CachedCount {
	return logCounter{l: r.metricLogger(name, "counter", tags)}
}

type logCounter struct {
	l log.Logger
}

func (c logCounter) ReportCount(v int64) {
	c.l.With("value", v).Debug("report counter")
}

func (r logReporter) AllocateGauge(name string, tags map[string]string) tally.CachedGauge {
	return logGauge{l: r.metricLogger(name, "gauge", tags)}
}

type logGauge struct {
	l log.Logger
}

func (g logGauge) ReportGauge(v float64) {
	g.l.With("value", v).Debug("report gauge")
}

// AllocateTimer is not implemented. Returns nil.
func (r logReporter) AllocateTimer(name string, tags map[string]string) tally.CachedTimer {
	return nil
}

// AllocateHistogram is not implemented. Returns nil.
func (r logReporter) AllocateHistogram(name string, tags map[string]string, buckets tally.Buckets) tally.CachedHistogram {
	return nil
}

func (r logReporter) Flush() {}

// expvarReporter publishes metrics to the expvar facility. Tags are not
// supported.
type expvarReporter struct{}

func newExpvarReporter() tally.CachedStatsReporter {
	return expvarReporter{}
}

func (r expvarReporter) Capabilities() tally.Capabilities { return r }
func (r expvarReporter) Reporting() bool                  { return false }
func (r expvarReporter) Tagging() bool                    { return false }

func (r expvarReporter) AllocateCounter(name string, _ map[string]string) tally.CachedCount {
	return expvarCounter{n: expvar.NewInt(name)}
}

type expvarCounter struct {
	n *expvar.Int
}

func (c expvarCounter) ReportCount(v int64) {
	c.n.Add(v)
}

func (r expvarReporter) AllocateGauge(name string, _ map[string]string) tally.CachedGauge {
	return expvarGauge{f: expvar.NewFloat(name)}
}

type expvarGauge struct {
	f *expvar.Float
}

func (g expvarGauge) ReportGauge(v float64) {
	g.f.Set(v)
}

// AllocateTimer is not implemented. Returns nil.
func (r expvarReporter) AllocateTimer(name string, tags map[string]string) tally.CachedTimer {
	return nil
}

// AllocateHistogram is not implemented. Returns nil.
func (r expvarReporter) AllocateHistogram(name string, tags map[string]string, buckets tally.Buckets) tally.CachedHistogram {
	return nil
}

func (r expvarReporter) Flush() {}
