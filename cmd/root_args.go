package cmd

import (
	"github.com/Atlas-Rhythm/forwardhook/internal/config"
)

func envMapString() map[*string]boundEnvVar[string] {
	return map[*string]boundEnvVar[string]{
		&config.Global.Mode: {
			Name:        "mode",
			Description: "The application runtime mode when no sub-command is given. Possible values are 'service' and 'lambda'",
			Short:       "m",
		},
		&config.Global.UserAgent: {
			Name:        "user-agent",
			Description: "The User-Agent header sent with forwarded requests (default forwardhook/<version>)",
		},
		&config.Archive.Bucket: {
			Name:        "archive-bucket",
			Description: "The S3 bucket that receives a copy of every forwarded document",
		},
		&config.Archive.Prefix: {
			Name:        "archive-prefix",
			Description: "The S3 key prefix of archived documents (default forwardhook/)",
		},
	}
}

func envMapBool() map[*bool]boundEnvVar[bool] {
	return map[*bool]boundEnvVar[bool]{
		&config.Global.Debug: {
			Name:        "debug",
			Description: "Return generated documents to the caller instead of forwarding them",
			Short:       "d",
		},
		&config.Global.Logging.CallerTrace: {
			Name:        "verbosity-caller-trace",
			Description: "Enable caller trace in logs",
			Short:       "V",
		},
		&config.Archive.Enabled: {
			Name:        "archive",
			Description: "Enable S3 archiving of forwarded documents",
		},
		&config.Tracing.Enabled: {
			Name:        "tracing",
			Description: "Enable OpenTelemetry tracing of inbound and forwarded requests",
		},
	}
}

func envMapCount() map[*int]boundEnvVar[int] {
	return map[*int]boundEnvVar[int]{
		&config.Global.Logging.Verbosity: {
			Name:        "verbosity",
			Description: "Increase logger verbosity (default WarnLevel)",
			Short:       "v",
			Count:       true,
		},
	}
}
