package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracer(t *testing.T) {
	var spans bytes.Buffer
	shutdown, err := telemetry.InitTracer("forwardhook-test", &spans, helpers.NewNoopLogger())
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "forward")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, spans.String(), `"Name":"forward"`)
	assert.Contains(t, spans.String(), "forwardhook-test")
}
