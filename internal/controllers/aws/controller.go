// Package aws wraps the AWS services used by forwardhook: SSM Parameter Store
// for secret forward URLs and S3 for archiving forwarded documents.
package aws

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/helpers"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go/logging"
	"github.com/pkg/errors"
)

// Controller provides SSM and S3 functionality with logging support.
type Controller struct {
	logger *slog.Logger

	config    *aws.Config
	bucket    string
	prefix    string
	s3Client  *s3.Client
	ssmClient *ssm.Client
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// NewController initializes a Controller, loading the default AWS configuration
// chain unless WithConfig is given.
func NewController(ctx context.Context, opts ...Option) (*Controller, error) {
	_inst := &Controller{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "aws")
	if _inst.config == nil {
		_inst.logger.Debug("loading default AWS configuration...")
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS configuration")
		}
		cfg.Logger = newAWSLogger(_inst.logger)
		_inst.config = &cfg
	}

	_inst.s3Client = s3.NewFromConfig(*_inst.config)
	_inst.ssmClient = ssm.NewFromConfig(*_inst.config)
	return _inst, nil
}

// GetSecret retrieves a parameter from SSM Parameter Store, decrypting it when
// encrypted is true.
func (a *Controller) GetSecret(ctx context.Context, key string, encrypted bool) (*string, error) {
	a.logger.With("key", key).Debug("fetching SSM parameter...")
	ssmResponse, err := a.ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(encrypted),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load SSM parameter %s", key)
	}
	if ssmResponse.Parameter == nil {
		return nil, errors.Errorf("SSM parameter %s not found", key)
	}
	return ssmResponse.Parameter.Value, nil
}

// Archive stores a forwarded document in the configured bucket under a
// timestamped key. It is a no-op when no bucket is configured.
func (a *Controller) Archive(ctx context.Context, id string, body []byte) error {
	if a.bucket == "" {
		return nil
	}
	key := ObjectKey(a.prefix, id, time.Now())
	a.logger.With("bucket", a.bucket, "key", key).Debug("archiving document...")
	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to put object to S3")
	}
	return nil
}

// ObjectKey returns the archive key of a document: <prefix><RFC3339Nano UTC>.<id>.json.
func ObjectKey(prefix, id string, t time.Time) string {
	return fmt.Sprintf("%s%s.%s.json", prefix, t.UTC().Format(time.RFC3339Nano), id)
}

type awsLogger struct {
	logger *slog.Logger
}

func newAWSLogger(logger *slog.Logger) *awsLogger {
	return &awsLogger{logger}
}

func (a *awsLogger) Logf(classification logging.Classification, format string, args ...any) {
	a.logger.Debug(fmt.Sprintf("[%v] %s", classification, fmt.Sprintf(format, args...)))
}
