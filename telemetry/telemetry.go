// Package telemetry provides monitoring utilities for long-running
// operations, chiefly key generation.
package telemetry

import (
	"io"
	"time"

	"github.com/uber-go/tally"
	"github.com/uber-go/tally/multi"

	"github.com/sybrenstuvel/gorsa/log"
)

// NewScope builds a root metrics scope reporting to expvar and to the
// given logger. The returned closer flushes and stops reporting.
func NewScope(prefix string, l log.Logger) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix: prefix,
		Tags:   map[string]string{},
		CachedReporter: multi.NewMultiCachedReporter(
			newExpvarReporter(),
			newLogReporter(l),
		),
	}, 1*time.Second)
}
