package cmd

import (
	"context"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
	"github.com/Atlas-Rhythm/forwardhook/internal/runtime"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Serve webhooks as an AWS Lambda function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.Global.Mode = config.ModeLambda
			return runLambda(cmd.Context())
		},
	}

	bindEnvMap(cmd, lambdaEnvMapString())

	return cmd
}

func runLambda(ctx context.Context) error {
	logger := logger.With("mode", config.ModeLambda)

	rt, shutdown, err := setup(ctx, logger, runtime.WithPayloadType(config.Lambda.PayloadType))
	if err != nil {
		return errors.Wrap(err, "failed to setup lambda")
	}
	defer func() { _ = shutdown(context.Background()) }()

	logger.Info("lambda starting...", "payloadType", config.Lambda.PayloadType)
	lambda.StartWithOptions(rt.Lambda, lambda.WithContext(ctx))
	return nil
}
