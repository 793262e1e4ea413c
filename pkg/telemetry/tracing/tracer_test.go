package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
)

// newTestTracer installs an in-memory provider and restores the globals
// when the test ends.
func newTestTracer(t *testing.T, sampler string) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()

	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(&config.TracingConfig{
		ServiceName: "payroll-formula-test",
		Sampler:     sampler,
		SampleRatio: 1,
	}, "test", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}

	t.Cleanup(func() {
		_ = tracer.Shutdown(context.Background())
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})
	return tracer, exporter
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{name: "nil config", wantErr: true},
		{
			name: "disabled",
			cfg:  &config.TracingConfig{Sampler: "bogus"},
		},
		{
			name: "enabled with unknown sampler",
			cfg: &config.TracingConfig{
				Enabled:  true,
				Endpoint: "localhost:4317",
				Sampler:  "sometimes",
				Insecure: true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.cfg, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
			if err := tracer.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestStart_RecordsSpans(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)
	if !tracer.Enabled() {
		t.Fatal("expected tracer to be enabled")
	}

	ctx, span := Start(context.Background(), "formula.execute")
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID in the span context")
	}
	SetFormulaAttributes(span, 3, 2, []string{"base_salary"})
	SetError(span, errors.New("division by zero"))
	span.End()

	if err := tracer.ForceFlush(context.Background()); err != nil {
		t.Fatalf("ForceFlush() error = %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Name != "formula.execute" {
		t.Errorf("span name = %q", got.Name)
	}
	if got.Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", got.Status.Code)
	}
	if len(got.Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}

	attrs := map[string]bool{}
	for _, kv := range got.Attributes {
		attrs[string(kv.Key)] = true
	}
	for _, key := range []string{AttrNodeCount, AttrComplexity, AttrVariables, AttrErrorMessage} {
		if !attrs[key] {
			t.Errorf("missing attribute %s", key)
		}
	}
}

func TestStart_NeverSampler(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerNever)

	_, span := Start(context.Background(), "formula.execute")
	span.End()
	_ = tracer.ForceFlush(context.Background())

	if n := len(exporter.GetSpans()); n != 0 {
		t.Errorf("got %d spans, want 0", n)
	}
}

func TestTraceID_NoSpan(t *testing.T) {
	if id := TraceID(context.Background()); id != "" {
		t.Errorf("TraceID() = %q, want empty", id)
	}
}

func TestSetError_Nil(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	_, span := Start(context.Background(), "ok")
	SetError(span, nil)
	span.End()
	_ = tracer.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Status.Code != codes.Ok {
		t.Fatalf("expected one OK span, got %+v", spans)
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{SamplerAlways, 0, false},
		{SamplerNever, 0, false},
		{SamplerRatio, 0.25, false},
		{SamplerRatio, 1.5, true},
		{SamplerRatio, -0.1, true},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			sampler, err := newSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && sampler == nil {
				t.Error("expected a sampler")
			}
		})
	}
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, exporter := newTestTracer(t, SamplerAlways)

	const parentTrace = "4bf92f3577b34da6a3ce929d0e0e4736"
	var innerTrace string
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		innerTrace = TraceID(r.Context())
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	req.Header.Set("traceparent", "00-"+parentTrace+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if innerTrace != parentTrace {
		t.Errorf("handler trace ID = %q, want %q", innerTrace, parentTrace)
	}
	if got := rec.Header().Get(TraceIDHeader); got != parentTrace {
		t.Errorf("%s = %q, want %q", TraceIDHeader, got, parentTrace)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}

	_ = tracer.ForceFlush(context.Background())
	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error for a 503", spans[0].Status.Code)
	}
}

func TestInjectExtract(t *testing.T) {
	newTestTracer(t, SamplerAlways)

	ctx, span := Start(context.Background(), "client")
	defer span.End()

	headers := http.Header{}
	Inject(ctx, headers)
	if headers.Get("traceparent") == "" {
		t.Fatal("expected a traceparent header")
	}

	extracted := Extract(context.Background(), headers)
	if TraceID(extracted) != TraceID(ctx) {
		t.Errorf("extracted trace ID = %q, want %q", TraceID(extracted), TraceID(ctx))
	}
}
