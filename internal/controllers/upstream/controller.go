// Package upstream forwards generated documents to the configured webhook targets.
package upstream

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/models"
	"github.com/Atlas-Rhythm/forwardhook/internal/version"
	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Controller sends forwarded requests through a shared, pooled HTTP client.
// It is safe for concurrent use.
type Controller struct {
	logger    *slog.Logger
	client    *http.Client
	userAgent string
	tracing   bool
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// NewController initializes a Controller with customizable options.
func NewController(opts ...Option) *Controller {
	_inst := &Controller{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "upstream")
	if _inst.client == nil {
		_inst.client = cleanhttp.DefaultPooledClient()
	}
	if _inst.tracing {
		transport := _inst.client.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		client := *_inst.client
		client.Transport = otelhttp.NewTransport(transport)
		_inst.client = &client
	}
	if _inst.userAgent == "" {
		_inst.userAgent = version.UserAgent()
	}
	return _inst
}

// Forward sends body to the entry target and returns the upstream status,
// body and content type. ctx bounds the whole exchange.
func (c *Controller) Forward(ctx context.Context, entry *webhook.Entry, body []byte) (models.Response, error) {
	logger := c.logger.With("webhook", entry.Name, "method", entry.Method())

	req, err := http.NewRequestWithContext(ctx, entry.Method(), entry.ForwardURL, bytes.NewReader(body))
	if err != nil {
		return models.Response{}, &Error{Webhook: entry.Name, Err: stripURL(err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug("forwarding document...")
	resp, err := c.client.Do(req)
	if err != nil {
		return models.Response{}, &Error{Webhook: entry.Name, Err: stripURL(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Response{}, &Error{Webhook: entry.Name, Err: stripURL(err)}
	}
	logger.Info("forwarded document", slog.Int("status", resp.StatusCode))

	response := models.Response{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
		Headers:    map[string]string{},
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		response.Headers["Content-Type"] = ct
	}
	return response, nil
}

// stripURL drops the *url.Error wrapper so the target never reaches callers.
func stripURL(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
