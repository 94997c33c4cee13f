package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestRecorder(t *testing.T, opts ...Option) (*Recorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(append([]Option{WithRegistry(reg)}, opts...)...), reg
}

func TestRecorder_Lifecycle(t *testing.T) {
	rec, _ := newTestRecorder(t)

	rec.InstanceConstructed("Button")
	rec.InstanceConstructed("Button")
	rec.InstanceConstructed("Card")
	rec.InstanceDestroyed("Button", ReasonExplicit)
	rec.InstanceDestroyed("Card", ReasonLiveness)

	if got := testutil.ToFloat64(rec.instances.WithLabelValues("Button")); got != 1 {
		t.Errorf("Button instances = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.instances.WithLabelValues("Card")); got != 0 {
		t.Errorf("Card instances = %v, want 0", got)
	}
	if got := testutil.ToFloat64(rec.constructions.WithLabelValues("Button")); got != 2 {
		t.Errorf("Button constructions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.destructions.WithLabelValues("Card", ReasonLiveness)); got != 1 {
		t.Errorf("Card liveness destructions = %v, want 1", got)
	}
}

func TestRecorder_PropertiesAndPasses(t *testing.T) {
	rec, reg := newTestRecorder(t, WithNamespace("test"), WithConstLabels(prometheus.Labels{"app": "shop"}))

	rec.PropertyWrite("Card")
	rec.PropertyWriteSuppressed("Card")
	rec.PropertyWriteSuppressed("Card")
	rec.BindingWarning("Card")
	rec.LivenessPass("Card", 3*time.Microsecond)

	if got := testutil.ToFloat64(rec.propertyWrites.WithLabelValues("Card")); got != 1 {
		t.Errorf("writes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.suppressedWrites.WithLabelValues("Card")); got != 2 {
		t.Errorf("suppressed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rec.bindingWarnings.WithLabelValues("Card")); got != 1 {
		t.Errorf("warnings = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rec.livenessPasses.WithLabelValues("Card")); got != 1 {
		t.Errorf("passes = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "test_liveness_pass_duration_seconds" {
			found = true
			m := mf.GetMetric()[0]
			if m.GetHistogram().GetSampleCount() != 1 {
				t.Errorf("histogram count = %d, want 1", m.GetHistogram().GetSampleCount())
			}
			if len(m.GetLabel()) != 2 {
				t.Errorf("labels = %v, want app and kind", m.GetLabel())
			}
		}
	}
	if !found {
		t.Error("namespaced histogram not gathered")
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var rec *Recorder
	rec.InstanceConstructed("Button")
	rec.InstanceDestroyed("Button", ReasonExplicit)
	rec.LivenessPass("Button", time.Millisecond)
	rec.PropertyWrite("Button")
	rec.PropertyWriteSuppressed("Button")
	rec.BindingWarning("Button")
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Error("registering the same collectors twice should panic")
		}
	}()
	New(WithRegistry(reg))
}

func TestWithBucketsAndSubsystem(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := New(WithRegistry(reg), WithSubsystem("ui"), WithBuckets([]float64{1}))
	rec.LivenessPass("Card", time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() == "uishka_ui_liveness_pass_duration_seconds" {
			if n := len(mf.GetMetric()[0].GetHistogram().GetBucket()); n != 1 {
				t.Errorf("buckets = %d, want 1", n)
			}
			return
		}
	}
	t.Error("subsystem histogram not gathered")
}
