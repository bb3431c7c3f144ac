package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/handler"
	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/Atlas-Rhythm/forwardhook/internal/models"
	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type lambdaRequest struct {
	Method          string
	Path            string
	Body            string
	IsBase64Encoded bool
	// Escaped is set for events that carry the raw, percent-encoded path.
	Escaped bool
}

type lambdaResult struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Lambda handles a raw Lambda invocation in the configured payload format.
// Request failures are encoded in the returned response; an error is only
// returned when the event itself cannot be decoded.
func (r *Runtime) Lambda(ctx context.Context, payload json.RawMessage) (any, error) {
	switch r.payloadType {
	case PayloadAPIGatewayV1:
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 event")
		}
		res := r.handleEvent(ctx, lambdaRequest{event.HTTPMethod, event.Path, event.Body, event.IsBase64Encoded, false})
		return events.APIGatewayProxyResponse{StatusCode: res.StatusCode, Headers: res.Headers, Body: res.Body}, nil
	case PayloadAPIGatewayV2:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 event")
		}
		res := r.handleEvent(ctx, lambdaRequest{event.RequestContext.HTTP.Method, event.RawPath, event.Body, event.IsBase64Encoded, true})
		return events.APIGatewayV2HTTPResponse{StatusCode: res.StatusCode, Headers: res.Headers, Body: res.Body}, nil
	case PayloadLambdaURL:
		var event events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL event")
		}
		res := r.handleEvent(ctx, lambdaRequest{event.RequestContext.HTTP.Method, event.RawPath, event.Body, event.IsBase64Encoded, true})
		return events.LambdaFunctionURLResponse{StatusCode: res.StatusCode, Headers: res.Headers, Body: res.Body}, nil
	default:
		return nil, errors.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}
}

func (r *Runtime) handleEvent(ctx context.Context, req lambdaRequest) lambdaResult {
	start := time.Now()
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	name := webhookName(req.Path)
	if req.Escaped {
		name = pathSegment(name)
	}

	response, err := r.process(ctx, name, req)
	statusCode, headers, body := helpers.Render(response, err)
	headers[RequestIDHeader] = requestID

	attrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.String("webhook", name),
		slog.Int("status", statusCode),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)

	return lambdaResult{StatusCode: statusCode, Headers: headers, Body: body}
}

func (r *Runtime) process(ctx context.Context, name string, req lambdaRequest) (models.Response, error) {
	if !strings.EqualFold(req.Method, http.MethodPost) {
		return models.Response{
			StatusCode: http.StatusMethodNotAllowed,
			Headers:    map[string]string{"Allow": http.MethodPost},
		}, ErrMethodNotAllowed
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return models.Response{Body: "invalid payload", StatusCode: http.StatusBadRequest}, &handler.MalformedInputError{Err: err}
		}
		body = decoded
	}
	return r.processor.Process(ctx, name, body)
}

// webhookName returns the last segment of an event path.
func webhookName(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
