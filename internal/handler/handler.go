// Package handler turns an inbound webhook request into the forwarded document
// and delivers it.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/Atlas-Rhythm/forwardhook/internal/controllers/upstream"
	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/models"
	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Forwarder delivers a generated document to the entry target.
type Forwarder interface {
	Forward(ctx context.Context, entry *webhook.Entry, body []byte) (models.Response, error)
}

// Archiver stores a copy of a forwarded document.
type Archiver interface {
	Archive(ctx context.Context, id string, body []byte) error
}

type Option func(*Handler)

// Handler is safe for concurrent use once built.
type Handler struct {
	logger      *slog.Logger
	registry    *webhook.Registry
	debug       bool
	forwarder   Forwarder
	archiver    Archiver
	archiveWarn *rate.Sometimes
}

// NewForwardHandler builds a Handler. Without WithForwarder, documents are
// sent with a default upstream.Controller.
func NewForwardHandler(opts ...Option) *Handler {
	_inst := &Handler{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("component", "handler")
	if _inst.forwarder == nil {
		_inst.forwarder = upstream.NewController(upstream.WithLogger(_inst.logger))
	}
	_inst.archiveWarn = helpers.OnceAMinute()
	return _inst
}

// Process handles one request for the webhook called name. The returned
// response is always usable; err describes why the request failed, if it did.
func (h *Handler) Process(ctx context.Context, name string, body []byte) (models.Response, error) {
	logger := h.logger.With("webhook", name)
	logger.Debug("processing request...")

	entry, found := h.registry.Resolve(name)
	if !found {
		err := &UnknownWebhookError{Name: name}
		logger.Info("rejecting request", slog.Any("error", err))
		return models.Response{Body: "unknown webhook", StatusCode: http.StatusNotFound}, err
	}

	input, err := decode(body)
	if err != nil {
		err = &MalformedInputError{Err: err}
		logger.Info("rejecting request", slog.Any("error", err))
		return models.Response{Body: "invalid payload", StatusCode: http.StatusBadRequest}, err
	}

	output, err := entry.Transform(input)
	if err != nil {
		logger.Info("rejecting request", slog.Any("error", err))
		return models.Response{Body: "failed to build the forwarded document", StatusCode: http.StatusBadRequest}, err
	}

	document, err := encode(output)
	if err != nil {
		logger.Error("failed to encode document", slog.Any("error", err))
		return models.Response{StatusCode: http.StatusInternalServerError}, err
	}

	if h.debug {
		logger.Debug("debug mode, returning document")
		return jsonResponse(http.StatusOK, document), nil
	}

	response, err := h.forwarder.Forward(ctx, entry, document)
	if err != nil {
		statusCode := http.StatusBadGateway
		var coded interface{ StatusCode() int }
		if errors.As(err, &coded) {
			statusCode = coded.StatusCode()
		}
		logger.Warn("forward failed", slog.Any("error", err), slog.Int("status", statusCode))
		return models.Response{Body: "upstream request failed", StatusCode: statusCode}, err
	}

	h.archive(ctx, logger, entry.Name, document)

	if len(entry.Reply) > 0 && response.StatusCode >= 200 && response.StatusCode < 300 {
		return jsonResponse(http.StatusOK, entry.Reply), nil
	}
	return response, nil
}

func (h *Handler) archive(ctx context.Context, logger *slog.Logger, id string, document []byte) {
	if h.archiver == nil {
		return
	}
	if err := h.archiver.Archive(context.WithoutCancel(ctx), id, document); err != nil {
		h.archiveWarn.Do(func() {
			logger.Warn("failed to archive document", slog.Any("error", err))
		})
	}
}

// decode parses exactly one JSON value, keeping numbers as written.
func decode(body []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var v any
	if err := decoder.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty body")
		}
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON value")
	}
	return v, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func jsonResponse(statusCode int, body []byte) models.Response {
	return models.Response{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}
