package cmd

import (
	"time"

	"github.com/Atlas-Rhythm/forwardhook/internal/config"
)

func svcEnvMapString() map[*string]boundEnvVar[string] {
	return map[*string]boundEnvVar[string]{
		&config.Service.Addr: {
			Name:        "service-addr",
			Description: "The address to serve on (default 127.0.0.1)",
			Short:       "H",
		},
		&config.Service.Path: {
			Name:        "service-path",
			Description: "The path prefix webhooks are served under (default /)",
			Short:       "P",
		},
	}
}

func svcEnvMapInt() map[*int]boundEnvVar[int] {
	return map[*int]boundEnvVar[int]{
		&config.Service.Port: {
			Name:        "port",
			Description: "The port to serve on",
			Short:       "p",
		},
	}
}

func svcEnvMapDuration() map[*time.Duration]boundEnvVar[time.Duration] {
	return map[*time.Duration]boundEnvVar[time.Duration]{
		&config.Service.Timeout: {
			Name:        "service-timeout",
			Description: "The timeout for reading, handling and answering a request (default 30s)",
			Short:       "t",
		},
	}
}
