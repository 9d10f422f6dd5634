package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// PhaseCollector records a flat, ordered list of phase durations.
type PhaseCollector struct {
	mu     sync.Mutex
	phases []*phase
}

type phase struct {
	name     string
	start    time.Time
	duration time.Duration
}

// NewPhaseCollector creates an empty collector.
func NewPhaseCollector() *PhaseCollector {
	return &PhaseCollector{}
}

// Start begins timing a phase and returns its stop function.
func (c *PhaseCollector) Start(name string) func() {
	p := &phase{name: name, start: time.Now()}

	c.mu.Lock()
	c.phases = append(c.phases, p)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		p.duration = time.Since(p.start)
		c.mu.Unlock()
	}
}

// Report writes one line per phase plus a total, in collection order.
// Example output:
//
//	parse      12ms
//	assemble    1ms
//	reconcile   0ms
//	check       0ms
//	total      13ms
func (c *PhaseCollector) Report(w io.Writer, styles Styler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.phases) == 0 {
		return
	}

	width := len("total")
	for _, p := range c.phases {
		if len(p.name) > width {
			width = len(p.name)
		}
	}

	var total time.Duration
	for _, p := range c.phases {
		total += p.duration
		writeLine(w, styles, width, p.name, p.duration)
	}
	writeLine(w, styles, width, "total", total)
}

func writeLine(w io.Writer, styles Styler, width int, name string, d time.Duration) {
	padding := width - len(name)
	timing := formatDuration(d)

	if styles == nil {
		_, _ = fmt.Fprintf(w, "%s%*s %s\n", name, padding, "", timing)
		return
	}

	// Slow phases stand out; a whole-file parse should stay well under
	// this on any realistic export.
	if d >= 100*time.Millisecond {
		timing = styles.Warning(timing)
	} else {
		timing = styles.Dim(timing)
	}
	_, _ = fmt.Fprintf(w, "%s%*s %s\n", styles.Keyword(name), padding, "", timing)
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}
