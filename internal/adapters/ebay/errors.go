package ebay

import (
	"fmt"
	"strings"
)

// StatusError is a non-success HTTP response from the marketplace, keeping the
// raw body so group-id hints embedded in error text stay recoverable.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("ebay request failed: %s", e.Status)
	}
	return fmt.Sprintf("ebay request failed: %s: %s", e.Status, e.Body)
}

func newStatusError(statusCode int, status string, body []byte) error {
	return &StatusError{
		StatusCode: statusCode,
		Status:     status,
		Body:       strings.TrimSpace(string(body)),
	}
}
