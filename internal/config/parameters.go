// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/jsonpath"
	"github.com/Atlas-Rhythm/forwardhook/internal/version"
	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

const (
	// ModeService runs the standalone HTTP server.
	ModeService = "service"
	// ModeLambda runs behind AWS Lambda.
	ModeLambda = "lambda"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
	// Archive is a struct that contains the configuration for archiving forwarded documents.
	Archive archive
	// Tracing is a struct that contains the OpenTelemetry configuration.
	Tracing tracing
	// Webhooks holds the raw webhook definitions, keyed by name.
	Webhooks map[string]Webhook
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Debug returns the generated document to the caller instead of forwarding it.
	Debug bool `yaml:"debug,omitempty"`
	// UserAgent is sent with every forwarded request. Defaults to forwardhook/<version>.
	UserAgent string `yaml:"userAgent,omitempty"`
	// Logging is a struct that contains the logging configuration.
	Logging logging `yaml:"logging,omitempty"`
}

type logging struct {
	// Verbosity is the verbosity level of the application. It represents slog levels.
	Verbosity int `yaml:"verbosity,omitempty"`
	// CallerTrace is a flag that enables the caller trace in the logger.
	CallerTrace bool `yaml:"callerTrace,omitempty"`
}

type service struct {
	Port    int           `yaml:"port,omitempty"`
	Addr    string        `yaml:"addr,omitempty" default:"127.0.0.1"`
	Path    string        `yaml:"path,omitempty" default:"/"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

type archive struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Bucket  string `yaml:"bucket,omitempty"`
	Prefix  string `yaml:"prefix,omitempty" default:"forwardhook/"`
}

type tracing struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Webhook is a webhook definition as written in the configuration file.
type Webhook struct {
	ForwardURL    string         `yaml:"forwardUrl"`
	ForwardMethod string         `yaml:"forwardMethod,omitempty"`
	Fields        []Field        `yaml:"fields"`
	Reply         map[string]any `yaml:"reply,omitempty"`
}

// Field is a field mapping as written in the configuration file. Paths are
// pointers so that an omitted path can be told apart from an empty one.
type Field struct {
	From     *jsonpath.Path `yaml:"from"`
	To       *jsonpath.Path `yaml:"to"`
	Optional bool           `yaml:"optional,omitempty"`
}

// document is the on-disk layout. port, userAgent, debug and webhooks sit at
// the top level so that plain forwardhook.json files load as-is.
type document struct {
	Port      int                `yaml:"port,omitempty"`
	UserAgent string             `yaml:"userAgent,omitempty"`
	Debug     bool               `yaml:"debug,omitempty"`
	Mode      string             `yaml:"mode,omitempty"`
	Logging   logging            `yaml:"logging,omitempty"`
	Service   service            `yaml:"service,omitempty"`
	Lambda    lambda             `yaml:"lambda,omitempty"`
	Archive   archive            `yaml:"archive,omitempty"`
	Tracing   tracing            `yaml:"tracing,omitempty"`
	Webhooks  map[string]Webhook `yaml:"webhooks"`
}

// Reset clears every section back to its zero value.
func Reset() {
	Global = global{}
	Service = service{}
	Lambda = lambda{}
	Archive = archive{}
	Tracing = tracing{}
	Webhooks = nil
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	if err := errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
		defaults.Set(&Archive),
		defaults.Set(&Tracing),
	); err != nil {
		return err
	}
	if Global.UserAgent == "" {
		Global.UserAgent = version.UserAgent()
	}
	return nil
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return errors.New("no configuration file specified")
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	return Load(content)
}

// Load replaces the current configuration with the one encoded in content.
func Load(content []byte) error {
	var d document
	if err := yaml.Unmarshal(content, &d); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	Global = global{
		Mode:      d.Mode,
		Debug:     d.Debug,
		UserAgent: d.UserAgent,
		Logging:   d.Logging,
	}
	Service = d.Service
	if d.Port != 0 {
		Service.Port = d.Port
	}
	Lambda = d.Lambda
	Archive = d.Archive
	Tracing = d.Tracing
	Webhooks = d.Webhooks

	return nil
}

// Validate checks the parameters that do not depend on external systems.
func Validate() error {
	var errs []error
	switch Global.Mode {
	case ModeService:
		if Service.Port < 1 || Service.Port > 65535 {
			errs = append(errs, &Error{Field: "port", Err: fmt.Errorf("must be between 1 and 65535, got %d", Service.Port)})
		}
	case ModeLambda:
		switch Lambda.PayloadType {
		case "api-gateway-v1", "api-gateway-v2", "lambda-url":
		default:
			errs = append(errs, &Error{Field: "lambda.payloadType", Err: fmt.Errorf("unsupported payload type %q", Lambda.PayloadType)})
		}
	default:
		errs = append(errs, &Error{Field: "mode", Err: fmt.Errorf("unsupported mode %q", Global.Mode)})
	}
	if Archive.Enabled && Archive.Bucket == "" {
		errs = append(errs, &Error{Field: "archive.bucket", Err: errors.New("required when archive is enabled")})
	}
	if len(Webhooks) == 0 {
		errs = append(errs, &Error{Field: "webhooks", Err: errors.New("at least one webhook must be configured")})
	}
	return errors.Join(errs...)
}
