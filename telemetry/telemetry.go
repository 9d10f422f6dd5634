// Package telemetry provides phase timing collection for the import
// pipeline. The pipeline is a fixed sequence of phases (load, parse,
// assemble, reconcile, check), so timings are collected as a flat list
// rather than a tree.
//
// Collectors travel through context so instrumentation never changes
// function signatures:
//
//	collector := telemetry.NewPhaseCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	done := telemetry.FromContext(ctx).Start("parse")
//	// ... work ...
//	done()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector records phase timings.
type Collector interface {
	// Start begins timing a phase. The returned function stops the
	// timer; call it exactly once.
	Start(name string) func()

	// Report writes the collected timings. Styles may be nil for plain
	// output.
	Report(w io.Writer, styles Styler)
}

// Styler is the subset of terminal styling the report needs. It is an
// interface so this package does not depend on the output package.
type Styler interface {
	Keyword(text string) string
	Dim(text string) string
	Warning(text string) string
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. When none is
// present a no-op collector is returned, so callers never check for
// nil.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// noOpCollector is used when telemetry is disabled; it has no state
// and no overhead.
type noOpCollector struct{}

func (noOpCollector) Start(name string) func() { return func() {} }
func (noOpCollector) Report(io.Writer, Styler) {}
