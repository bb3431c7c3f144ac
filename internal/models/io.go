// Package models provides the transport-neutral response produced for every webhook request.
package models

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
// A zero StatusCode means 200.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
