package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
	"golang.org/x/net/http/httpguts"
)

// SSMPrefix marks a forward URL that is stored in AWS SSM Parameter Store,
// e.g. ssm:/forwardhook/slack-url.
const SSMPrefix = "ssm:"

// SecretResolver fetches secret values referenced from the configuration.
type SecretResolver interface {
	GetSecret(ctx context.Context, key string, encrypted bool) (*string, error)
}

// RequiresSecrets reports whether any webhook forward URL must be fetched from SSM.
func RequiresSecrets() bool {
	for _, wh := range Webhooks {
		if strings.HasPrefix(wh.ForwardURL, SSMPrefix) {
			return true
		}
	}
	return false
}

// BuildRegistry validates the configured webhooks and indexes them by name.
// secrets may be nil when RequiresSecrets is false. Every invalid value is
// reported, joined into a single error of *Error values.
func BuildRegistry(ctx context.Context, secrets SecretResolver) (*webhook.Registry, error) {
	var errs []error
	entries := make([]*webhook.Entry, 0, len(Webhooks))
	for _, name := range slices.Sorted(maps.Keys(Webhooks)) {
		entry, err := buildEntry(ctx, name, Webhooks[name], secrets)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return webhook.NewRegistry(entries...), nil
}

func buildEntry(ctx context.Context, name string, wh Webhook, secrets SecretResolver) (*webhook.Entry, error) {
	prefix := "webhooks." + name
	var errs []error

	if name == "" || strings.Contains(name, "/") {
		errs = append(errs, &Error{Field: prefix, Err: fmt.Errorf("webhook name %q must be a single, non-empty path segment", name)})
	}

	method := strings.ToUpper(strings.TrimSpace(wh.ForwardMethod))
	if method == "" {
		method = http.MethodPost
	}
	if strings.IndexFunc(method, func(r rune) bool { return !httpguts.IsTokenRune(r) }) != -1 {
		errs = append(errs, &Error{Field: prefix + ".forwardMethod", Err: fmt.Errorf("%q is not a valid HTTP method", wh.ForwardMethod)})
	}

	forwardURL, err := resolveURL(ctx, wh.ForwardURL, secrets)
	if err != nil {
		errs = append(errs, &Error{Field: prefix + ".forwardUrl", Err: err})
	}

	fields := make([]webhook.Field, 0, len(wh.Fields))
	for i, f := range wh.Fields {
		location := fmt.Sprintf("%s.fields[%d]", prefix, i)
		if f.From == nil {
			errs = append(errs, &Error{Field: location + ".from", Err: errors.New("required")})
		}
		switch {
		case f.To == nil:
			errs = append(errs, &Error{Field: location + ".to", Err: errors.New("required")})
		case len(*f.To) == 0:
			errs = append(errs, &Error{Field: location + ".to", Err: errors.New("path must not be empty")})
		default:
			for _, segment := range *f.To {
				if i, ok := segment.Index(); ok && i > jsonpath.MaxIndex {
					errs = append(errs, &Error{Field: location + ".to", Err: fmt.Errorf("index %d exceeds the maximum of %d", i, jsonpath.MaxIndex)})
					break
				}
			}
		}
		if f.From == nil || f.To == nil {
			continue
		}
		fields = append(fields, webhook.Field{From: *f.From, To: *f.To, Optional: f.Optional})
	}

	var reply json.RawMessage
	if wh.Reply != nil {
		if reply, err = json.Marshal(wh.Reply); err != nil {
			errs = append(errs, &Error{Field: prefix + ".reply", Err: fmt.Errorf("must be a JSON object: %w", err)})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &webhook.Entry{
		Name:          name,
		ForwardURL:    forwardURL,
		ForwardMethod: method,
		Fields:        fields,
		Reply:         reply,
	}, nil
}

func resolveURL(ctx context.Context, raw string, secrets SecretResolver) (string, error) {
	if key, ok := strings.CutPrefix(raw, SSMPrefix); ok {
		if secrets == nil {
			return "", fmt.Errorf("cannot resolve %s without an SSM client", raw)
		}
		value, err := secrets.GetSecret(ctx, key, true)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", raw, err)
		}
		if value == nil {
			return "", fmt.Errorf("SSM parameter %s has no value", key)
		}
		raw = strings.TrimSpace(*value)
	}

	if raw == "" {
		return "", errors.New("required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("URL has no host")
	}
	return u.String(), nil
}
