package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
	"github.com/Atlas-Rhythm/forwardhook/internal/controllers/aws"
	"github.com/Atlas-Rhythm/forwardhook/internal/controllers/upstream"
	"github.com/Atlas-Rhythm/forwardhook/internal/handler"
	"github.com/Atlas-Rhythm/forwardhook/internal/runtime"
	"github.com/Atlas-Rhythm/forwardhook/internal/telemetry"
	"github.com/Atlas-Rhythm/forwardhook/internal/webhook"
	"github.com/pkg/errors"
)

const serviceName = "forwardhook"

// newAWSController returns a controller when the configuration needs SSM or S3, or nil.
func newAWSController(ctx context.Context, logger *slog.Logger) (*aws.Controller, error) {
	if !config.RequiresSecrets() && !config.Archive.Enabled {
		return nil, nil
	}
	opts := []aws.Option{aws.WithLogger(logger.With("component", "aws-controller"))}
	if config.Archive.Enabled {
		opts = append(opts, aws.WithArchive(config.Archive.Bucket, config.Archive.Prefix))
	}
	ctl, err := aws.NewController(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS controller")
	}
	return ctl, nil
}

func buildRegistry(ctx context.Context, awsCtl *aws.Controller) (*webhook.Registry, error) {
	var secrets config.SecretResolver
	if awsCtl != nil {
		secrets = awsCtl
	}
	registry, err := config.BuildRegistry(ctx, secrets)
	if err != nil {
		return nil, errors.Wrap(err, "invalid webhook configuration")
	}
	return registry, nil
}

// setup validates the configuration and wires the runtime. The returned
// function flushes telemetry and must be called on exit.
func setup(ctx context.Context, logger *slog.Logger, opts ...runtime.Option) (*runtime.Runtime, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if err := config.Validate(); err != nil {
		return nil, noop, errors.Wrap(err, "invalid configuration")
	}

	awsCtl, err := newAWSController(ctx, logger)
	if err != nil {
		return nil, noop, err
	}
	registry, err := buildRegistry(ctx, awsCtl)
	if err != nil {
		return nil, noop, err
	}
	logger.Info("webhooks loaded", slog.Any("webhooks", registry.Names()))

	shutdown := noop
	if config.Tracing.Enabled {
		if shutdown, err = telemetry.InitTracer(serviceName, os.Stdout, logger); err != nil {
			return nil, noop, errors.Wrap(err, "failed to initialize tracing")
		}
	}

	logger.Debug("creating forward handler...")
	handlerOpts := []handler.Option{
		handler.WithLogger(logger),
		handler.WithRegistry(registry),
		handler.WithDebug(config.Global.Debug),
		handler.WithForwarder(upstream.NewController(
			upstream.WithLogger(logger),
			upstream.WithUserAgent(config.Global.UserAgent),
			upstream.WithTracing(config.Tracing.Enabled),
		)),
	}
	if config.Archive.Enabled {
		handlerOpts = append(handlerOpts, handler.WithArchiver(awsCtl))
	}
	hdl := handler.NewForwardHandler(handlerOpts...)

	logger.Debug("creating runtime...")
	opts = append([]runtime.Option{
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithTracing(config.Tracing.Enabled),
	}, opts...)
	return runtime.NewRuntime(hdl, opts...), shutdown, nil
}
