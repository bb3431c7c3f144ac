package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute returns a limiter that runs its first call and then at most one call per minute.
func OnceAMinute() *rate.Sometimes {
	return &rate.Sometimes{
		Interval: time.Minute,
	}
}
