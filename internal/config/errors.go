package config

import "fmt"

// Error reports an invalid configuration value. Field names the offending
// location, e.g. webhooks.todo.fields[0].to.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
