package fetch

import (
	"fmt"
	"net/http"
)

// StatusError reports a non-success HTTP response. It carries the status code
// and an excerpt of the error body so callers can tell an absent resource
// from a transient server failure and drive their own retry policy — this
// layer never retries.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s failed: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s failed: %s\n%s", e.URL, e.Status, e.Body)
}

// NotFound reports whether the response said the resource does not exist.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
