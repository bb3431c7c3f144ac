package runtime

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrMethodNotAllowed is returned for inbound requests that are not POST.
var ErrMethodNotAllowed = errors.New("method not allowed, webhooks only accept POST")

var errNotFound = errors.New("no webhook at this path")

// Router serves POST <prefix>/{webhook}.
func (r *Runtime) Router(prefix string) http.Handler {
	router := chi.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(r.logger))
	if r.timeout > 0 {
		router.Use(TimeoutMiddleware(r.timeout))
	}
	router.Use(middleware.Recoverer)
	if r.tracing {
		router.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "forwardhook")
		})
	}

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusNotFound}, errNotFound, w)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", http.MethodPost)
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, ErrMethodNotAllowed, w)
	})
	router.Post(routePattern(prefix), r.ServeHTTP)
	return router
}

// ServeHTTP handles a request routed by Router.
func (r *Runtime) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := pathSegment(chi.URLParam(req, "webhook"))
	AddLogField(req.Context(), "webhook", name)

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, w)
		return
	}

	response, err := r.processor.Process(req.Context(), name, body)
	if err != nil {
		AddLogField(req.Context(), "error", err.Error())
	}
	helpers.RespondHTTP(response, err, w)
}

// pathSegment decodes an escaped path segment. chi matches on the escaped path
// when the request has one. Invalid escapes are kept as-is and match no webhook.
func pathSegment(segment string) string {
	if unescaped, err := url.PathUnescape(segment); err == nil {
		return unescaped
	}
	return segment
}

func routePattern(prefix string) string {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return "/{webhook}"
	}
	return prefix + "/{webhook}"
}
