// Package runtime adapts the forwarding handler to its inbound transports:
// a chi HTTP router for service mode and API Gateway / function URL events
// for Lambda mode.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/models"
)

// Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

// Processor handles the body posted to a named webhook.
type Processor interface {
	Process(ctx context.Context, name string, body []byte) (models.Response, error)
}

type Option func(*Runtime)

// WithLogger sets the logger used for request logs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithPayloadType selects the Lambda event format. Defaults to api-gateway-v2.
func WithPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

// WithTracing wraps the HTTP router with OpenTelemetry instrumentation.
func WithTracing(enabled bool) Option {
	return func(r *Runtime) {
		r.tracing = enabled
	}
}

// WithRequestTimeout bounds every routed HTTP request. Zero disables the limit.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = timeout
	}
}

type Runtime struct {
	processor   Processor
	logger      *slog.Logger
	payloadType string
	tracing     bool
	timeout     time.Duration
}

// NewRuntime creates a new runtime instance
func NewRuntime(processor Processor, opts ...Option) *Runtime {
	_inst := &Runtime{processor: processor}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.payloadType == "" {
		_inst.payloadType = PayloadAPIGatewayV2
	}
	return _inst
}
