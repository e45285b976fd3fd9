package trace

import (
	"context"
	"errors"
	"time"

	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type InitConfig struct {
	ServiceName     string
	Version         string
	TraceEndpoint   string
	MetricEndpoint  string
	TraceProject    string
	TraceInstanceID string
	TraceAK         string
	TraceSK         string
}

var shutdowns []func(context.Context) error

func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(conf.ServiceName),
		semconv.ServiceVersion(conf.Version),
		attribute.String("service.project", conf.TraceProject),
		attribute.String("service.instance.id", conf.TraceInstanceID),
	))
	if err != nil {
		logger.Errorf(ctx, "init trace resource err: %+v", err)
		res = resource.Default()
	}

	if err := initTracer(ctx, conf, res); err != nil {
		logger.Fatalf(ctx, "init tracer fail err: %+v", err)
	}
	if err := initMeter(ctx, conf, res); err != nil {
		logger.Fatalf(ctx, "init meter fail err: %+v", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(15 * time.Second)); err != nil {
		logger.Warnf(ctx, "start runtime instrumentation err: %+v", err)
	}
	if err := host.Start(); err != nil {
		logger.Warnf(ctx, "start host instrumentation err: %+v", err)
	}
}

func headers(conf *InitConfig) map[string]string {
	h := map[string]string{}
	if conf.TraceProject != "" {
		h["x-trace-project"] = conf.TraceProject
	}
	if conf.TraceInstanceID != "" {
		h["x-trace-instance"] = conf.TraceInstanceID
	}
	if conf.TraceAK != "" {
		h["x-trace-ak"] = conf.TraceAK
	}
	if conf.TraceSK != "" {
		h["x-trace-sk"] = conf.TraceSK
	}
	return h
}

func initTracer(ctx context.Context, conf *InitConfig, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	if conf.TraceEndpoint != "" {
		otlpExporter, err := newOTLPTraceExporter(ctx, conf)
		if err != nil {
			return err
		}
		exporter = otlpExporter
	} else {
		stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		exporter = stdoutExporter
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	shutdowns = append(shutdowns, tp.Shutdown)
	return nil
}

func newOTLPTraceExporter(ctx context.Context, conf *InitConfig) (*otlptrace.Exporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithHeaders(headers(conf)),
	)
}

func initMeter(ctx context.Context, conf *InitConfig, res *resource.Resource) error {
	var exporter sdkmetric.Exporter
	if conf.MetricEndpoint != "" {
		otlpExporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(conf.MetricEndpoint),
			otlpmetricgrpc.WithInsecure(),
			otlpmetricgrpc.WithHeaders(headers(conf)),
		)
		if err != nil {
			return err
		}
		exporter = otlpExporter
	} else {
		stdoutExporter, err := stdoutmetric.New()
		if err != nil {
			return err
		}
		exporter = stdoutExporter
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	shutdowns = append(shutdowns, mp.Shutdown)
	return nil
}

func CloseTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	for _, shutdown := range shutdowns {
		errs = append(errs, shutdown(ctx))
	}
	shutdowns = nil
	if err := errors.Join(errs...); err != nil {
		logger.Errorf(ctx, "close trace err: %+v", err)
	}
}
