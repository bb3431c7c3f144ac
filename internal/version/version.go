// Package version holds the build version of forwardhook.
package version

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=...".
var Version = "0.1.0"

// UserAgent is the default User-Agent sent with forwarded requests.
func UserAgent() string {
	return "forwardhook/" + Version
}
