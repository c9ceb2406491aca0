package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/noah-isme/pawcare-grooming-api/pkg/config"
)

func TestSetupDisabledInstallsPropagators(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestTracerStartsSpans(t *testing.T) {
	ctx, span := Tracer().Start(context.Background(), "availability.check")
	defer span.End()
	assert.NotNil(t, ctx)
}
