package support

import (
	"context"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/weegigs/wee-counter/we"
)

var Live = wire.NewSet(
	NewLogger,
	TracerProvider,
)

// NewLogger logs to stderr, leaving stdout to the stdio transport.
func NewLogger(config Config) *zerolog.Logger {
	logger := zerolog.New(os.Stderr).Level(config.LogLevel).With().Timestamp().Logger()
	return &logger
}

// TracerProvider installs the configured exporter as the global tracer provider.
func TracerProvider(ctx context.Context, config Config) (oteltrace.TracerProvider, func(), error) {
	var exporter trace.SpanExporter
	var err error

	switch config.Tracing {
	case ConsoleTracing:
		exporter, err = we.ConsoleExporter()
	case JaegerTracing:
		exporter, err = we.JaegerExporter(config.JaegerEndpoint)
	case HoneycombTracing:
		exporter, err = we.HoneycombExporter(ctx, config.HoneycombTeam, config.HoneycombDataset)
	default:
		return otel.GetTracerProvider(), func() {}, nil
	}

	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %s exporter", config.Tracing)
	}

	provider := we.TracerProvider(exporter)
	otel.SetTracerProvider(provider)

	return provider, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}, nil
}
