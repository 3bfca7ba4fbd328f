package airtable

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// StatusError is any non-2xx response from the record store. 429 and 422
// get special handling (backoff retry and schema-probing fallback); every
// other status is a plain transport failure.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("record store returned status %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// IsUnprocessable reports whether err is a 422 response, the signal that a
// guessed field name or shape does not exist in the backend schema.
func IsUnprocessable(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnprocessableEntity
}

// parseRetryAfter reads the server's wait hint in seconds from Retry-After,
// falling back to X-Ratelimit-Reset.
func parseRetryAfter(h http.Header) time.Duration {
	for _, key := range []string{"Retry-After", "X-Ratelimit-Reset"} {
		raw := h.Get(key)
		if raw == "" {
			continue
		}
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil || secs <= 0 {
			continue
		}
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}
