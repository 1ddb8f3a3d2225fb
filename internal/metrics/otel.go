package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "nba-apex-engine"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	analysisCycles    metric.Int64Counter
	analysisErrors    metric.Int64Counter
	analysisLatencyMs metric.Float64Histogram
	gamesAnalyzed     metric.Int64Counter
	gamesSkipped      metric.Int64Counter
	simulationTrials  metric.Int64Counter
	simulationLatency metric.Float64Histogram
	ticketsEmitted    metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("nba-apex-engine")
	ctx := context.Background()

	inst := &otelInstruments{ctx: ctx, meter: meter}
	var err error

	if inst.requests, err = meter.Int64Counter("http_requests_total"); err != nil {
		return nil, err
	}
	if inst.requestLatencyMs, err = meter.Float64Histogram("http_request_duration_ms"); err != nil {
		return nil, err
	}
	if inst.providerAttempts, err = meter.Int64Counter("provider_attempts_total"); err != nil {
		return nil, err
	}
	if inst.providerErrors, err = meter.Int64Counter("provider_errors_total"); err != nil {
		return nil, err
	}
	if inst.providerLatencyMs, err = meter.Float64Histogram("provider_call_duration_ms"); err != nil {
		return nil, err
	}
	if inst.analysisCycles, err = meter.Int64Counter("analysis_cycles_total"); err != nil {
		return nil, err
	}
	if inst.analysisErrors, err = meter.Int64Counter("analysis_cycle_errors_total"); err != nil {
		return nil, err
	}
	if inst.analysisLatencyMs, err = meter.Float64Histogram("analysis_cycle_duration_ms"); err != nil {
		return nil, err
	}
	if inst.gamesAnalyzed, err = meter.Int64Counter("games_analyzed_total"); err != nil {
		return nil, err
	}
	if inst.gamesSkipped, err = meter.Int64Counter("games_skipped_total"); err != nil {
		return nil, err
	}
	if inst.simulationTrials, err = meter.Int64Counter("simulation_trials_total"); err != nil {
		return nil, err
	}
	if inst.simulationLatency, err = meter.Float64Histogram("simulation_duration_ms"); err != nil {
		return nil, err
	}
	if inst.ticketsEmitted, err = meter.Int64Counter("tickets_emitted_total"); err != nil {
		return nil, err
	}

	return inst, nil
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordAnalysisCycle(duration time.Duration, analyzed, skipped int, err error) {
	o.analysisCycles.Add(o.ctx, 1)
	o.analysisLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
	o.gamesAnalyzed.Add(o.ctx, int64(analyzed))
	o.gamesSkipped.Add(o.ctx, int64(skipped))
	if err != nil {
		o.analysisErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordSimulation(trials int, duration time.Duration) {
	o.simulationTrials.Add(o.ctx, int64(trials))
	o.simulationLatency.Record(o.ctx, float64(duration.Milliseconds()))
}

func (o *otelInstruments) recordTickets(count int) {
	o.ticketsEmitted.Add(o.ctx, int64(count))
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", strconv.Itoa(status)),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
}
