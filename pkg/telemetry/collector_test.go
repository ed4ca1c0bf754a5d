package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/feather-dev/feather/pkg/dom"
	"github.com/feather-dev/feather/pkg/feather"
	"github.com/feather-dev/feather/pkg/vdom"
)

type recordedSpan struct {
	noop.Span
	name       string
	start, end time.Time
	attrs      []attribute.KeyValue
	status     codes.Code
	ended      bool
}

func (s *recordedSpan) End(opts ...trace.SpanEndOption) {
	s.end = trace.NewSpanEndConfig(opts...).Timestamp()
	s.ended = true
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) attr(key string) (int64, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.AsInt64(), true
		}
	}
	return 0, false
}

type recordingTracer struct {
	embedded.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, start: cfg.Timestamp(), attrs: cfg.Attributes()}
	t.spans = append(t.spans, s)
	return ctx, s
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

// flaky panics in its effect the first time the count reaches one.
func flaky(c *feather.Ctx, _ vdom.Attrs, _ []*vdom.VNode) *vdom.VNode {
	count, setCount := feather.UseState(c, 0)
	feather.UseEffect(c, func() feather.Cleanup {
		if count == 1 {
			panic("boom")
		}
		return nil
	}, []any{count})
	return c.H("button", vdom.Props{"onClick": func() { setCount(count + 1) }}, count)
}

func TestCollectorObservesRoot(t *testing.T) {
	reg := prometheus.NewRegistry()
	tracer := &recordingTracer{}
	col := New(WithRegistry(reg), WithTracer(tracer))

	r := feather.MountWith(feather.Options{
		Observer: col,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, dom.NewDocument().Body(), flaky, nil)
	r.Dispatch(&dom.Event{Type: "click", Target: r.Node()})

	if got := metricCounterValue(t, col.renders); got != 2 {
		t.Errorf("renders_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, col.commits); got != 2 {
		t.Errorf("commits_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, col.effects); got != 2 {
		t.Errorf("effects_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, col.errors.WithLabelValues("E101")); got != 1 {
		t.Errorf("errors_total{code=E101} = %v, want 1", got)
	}
	if got := metricGaugeValue(t, col.instances); got != 1 {
		t.Errorf("instances = %v, want 1", got)
	}
	if got := metricCounterValue(t, col.mutations); got == 0 {
		t.Error("mutations_total = 0, want the mount mutations counted")
	}
	if got := metricHistogramCount(t, col.renderDuration); got != 2 {
		t.Errorf("render_duration_seconds count = %v, want 2", got)
	}
	if got := metricHistogramCount(t, col.commitDuration); got != 2 {
		t.Errorf("commit_duration_seconds count = %v, want 2", got)
	}

	var names []string
	for _, s := range tracer.spans {
		names = append(names, s.name)
		if !s.ended {
			t.Errorf("span %s not ended", s.name)
		}
		if s.end.Before(s.start) {
			t.Errorf("span %s ends before it starts", s.name)
		}
	}
	if got, want := strings.Join(names, ","), "feather.render,feather.commit,feather.render,feather.commit"; got != want {
		t.Fatalf("spans = %s, want %s", got, want)
	}
	if got := tracer.spans[1].status; got != codes.Ok {
		t.Errorf("first commit status = %v, want Ok", got)
	}
	if got := tracer.spans[3].status; got != codes.Error {
		t.Errorf("panicking commit status = %v, want Error", got)
	}
	if p, _ := tracer.spans[3].attr("feather.panics"); p != 1 {
		t.Errorf("feather.panics = %d, want 1", p)
	}
	if p, _ := tracer.spans[2].attr("feather.pass"); p != 1 {
		t.Errorf("feather.pass = %d, want 1", p)
	}
}

func TestSpanTimestampsFromMeasurement(t *testing.T) {
	tracer := &recordingTracer{}
	col := New(WithRegistry(prometheus.NewRegistry()), WithTracer(tracer))

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	col.ObserveRender(feather.RenderInfo{Pass: 3, Start: start, Duration: 250 * time.Millisecond})

	s := tracer.spans[0]
	if !s.start.Equal(start) {
		t.Errorf("start = %v, want %v", s.start, start)
	}
	if want := start.Add(250 * time.Millisecond); !s.end.Equal(want) {
		t.Errorf("end = %v, want %v", s.end, want)
	}
	if s.status != codes.Unset {
		t.Errorf("render status = %v, want Unset", s.status)
	}
}

func TestServerMeasurements(t *testing.T) {
	col := New(WithRegistry(prometheus.NewRegistry()), WithTracer(noop.NewTracerProvider().Tracer("")))

	col.ViewerConnected()
	col.ViewerConnected()
	col.ViewerDisconnected()
	col.FrameSent()
	col.FrameSent()
	col.WebSocketError("read")

	if got := metricGaugeValue(t, col.viewers); got != 1 {
		t.Errorf("viewers = %v, want 1", got)
	}
	if got := metricCounterValue(t, col.framesSent); got != 2 {
		t.Errorf("frames_sent_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, col.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total{type=read} = %v, want 1", got)
	}
}

func TestNamespaceAndRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(WithRegistry(reg), WithNamespace("app"), WithSubsystem("ui"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.001, 0.01}),
		WithTracerName("test"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "app_ui_") {
			t.Errorf("metric %s lacks namespace prefix", f.GetName())
		}
		if f.GetName() == "app_ui_viewers" {
			found = true
			if l := f.GetMetric()[0].GetLabel(); len(l) != 1 || l[0].GetValue() != "test" {
				t.Errorf("const labels = %v", l)
			}
		}
	}
	if !found {
		t.Error("app_ui_viewers not registered")
	}

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	New(WithRegistry(reg), WithNamespace("app"), WithSubsystem("ui"))
}
