package handler

import "fmt"

// UnknownWebhookError is returned when the request names a webhook that is not configured.
type UnknownWebhookError struct {
	Name string
}

func (e *UnknownWebhookError) Error() string {
	return fmt.Sprintf("unknown webhook %q", e.Name)
}

// MalformedInputError is returned when the request body is not a single JSON value.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed JSON body: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
