package handler

import (
	"log/slog"

	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithRegistry sets the webhooks served by the handler.
func WithRegistry(registry *webhook.Registry) Option {
	return func(h *Handler) {
		h.registry = registry
	}
}

// WithDebug makes the handler return generated documents instead of forwarding them.
func WithDebug(debug bool) Option {
	return func(h *Handler) {
		h.debug = debug
	}
}

// WithForwarder sets the client that delivers generated documents.
func WithForwarder(forwarder Forwarder) Option {
	return func(h *Handler) {
		h.forwarder = forwarder
	}
}

// WithArchiver stores every forwarded document with archiver.
func WithArchiver(archiver Archiver) Option {
	return func(h *Handler) {
		h.archiver = archiver
	}
}
