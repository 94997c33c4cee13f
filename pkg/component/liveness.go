package component

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"

	"github.com/vango-dev/uishka/pkg/metrics"
	"github.com/vango-dev/uishka/pkg/telemetry"
)

// Monitor destroys the instances of one kind whose node has left the document.
// It knows nothing about how removals are observed: the host calls
// NotifyPossibleRemoval once per batch of structural changes.
type Monitor struct {
	env       *Env
	kind      string
	count     func() int
	snapshot  func() []*Base
	passes    int
	destroyed int
}

func newMonitor(env *Env, kind string, count func() int, snapshot func() []*Base) *Monitor {
	return &Monitor{
		env:      env,
		kind:     kind,
		count:    count,
		snapshot: snapshot,
	}
}

// NotifyPossibleRemoval runs one liveness pass if removed is non-empty and the
// kind has live instances. Every instance whose node is no longer connected is
// destroyed. It returns the number destroyed.
func (m *Monitor) NotifyPossibleRemoval(ctx context.Context, removed []*html.Node) int {
	if len(removed) == 0 {
		return 0
	}
	live := m.count()
	if live == 0 {
		return 0
	}

	ctx, span := m.env.tracer.StartLivenessPass(ctx, m.kind, len(removed))
	start := time.Now()

	destroyed := 0
	for _, b := range m.snapshot() {
		if b.destroyed || m.env.doc.IsConnected(b.node) {
			continue
		}
		b.destroy(metrics.ReasonLiveness)
		destroyed++
	}

	elapsed := time.Since(start)
	m.passes++
	m.destroyed += destroyed
	m.env.metrics.LivenessPass(m.kind, elapsed)
	telemetry.End(span, nil,
		attribute.Int(telemetry.AttrLive, live),
		attribute.Int(telemetry.AttrDestroyed, destroyed),
	)
	m.env.logger.DebugContext(ctx, "liveness pass",
		slog.String("kind", m.kind),
		slog.Int("removed", len(removed)),
		slog.Int("live", live),
		slog.Int("destroyed", destroyed),
		slog.Duration("elapsed", elapsed),
	)
	return destroyed
}

// Passes returns the number of liveness passes run.
func (m *Monitor) Passes() int {
	return m.passes
}

// Destroyed returns the number of instances the monitor has destroyed.
func (m *Monitor) Destroyed() int {
	return m.destroyed
}
