package upstream

import (
	"log/slog"
	"net/http"
)

// WithLogger sets the logger used by the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClient replaces the pooled default HTTP client.
func WithClient(client *http.Client) Option {
	return func(c *Controller) {
		c.client = client
	}
}

// WithUserAgent sets the User-Agent header of forwarded requests.
func WithUserAgent(userAgent string) Option {
	return func(c *Controller) {
		c.userAgent = userAgent
	}
}

// WithTracing instruments the outbound transport with OpenTelemetry.
func WithTracing(enabled bool) Option {
	return func(c *Controller) {
		c.tracing = enabled
	}
}
