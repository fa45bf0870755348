package tracing

import (
	"os"
	"strings"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("liftlog-backend")

// EndSpanWithErrCheck marks the span as failed when err is set, then ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// HoneycombEnabled reads HONEYCOMB_ENABLED from the environment.
func HoneycombEnabled() bool {
	return strings.EqualFold(os.Getenv("HONEYCOMB_ENABLED"), "true")
}

// HoneycombSetup configures the global tracer provider to export to Honeycomb.
// The returned func flushes and shuts the exporter down.
func HoneycombSetup(serviceName string) (func(), error) {
	// use honeycomb distro to setup OpenTelemetry SDK
	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, err
	}

	log.Infof("honeycomb tracing set up for service %s", serviceName)
	return otelShutdown, nil
}
