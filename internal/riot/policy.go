package riot

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotFound is matched by APIErrors carrying a 404
	ErrNotFound = errors.New("not found")
	// ErrKeyRejected is matched by APIErrors carrying a 401 or 403
	ErrKeyRejected = errors.New("API key rejected")
)

// APIError is a non-2xx response from the Riot API
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusForbidden:
		return fmt.Sprintf("API returned 403 Forbidden for %s - check if your API key is valid", e.URL)
	case http.StatusNotFound:
		return fmt.Sprintf("API returned 404 Not Found for %s", e.URL)
	}
	return fmt.Sprintf("API returned status %d for %s", e.StatusCode, e.URL)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrKeyRejected
	}
	return nil
}

// Action says what the client does with a response status
type Action int

const (
	// Terminal fails the request immediately
	Terminal Action = iota
	// Retry re-issues the request right away
	Retry
	// Backoff re-issues the request after Step*attempt
	Backoff
)

// Rule is the handling for one status code
type Rule struct {
	Action   Action
	Attempts int
	Step     time.Duration
}

// Policy maps status codes to handling rules. Statuses without a rule are terminal.
type Policy map[int]Rule

// DefaultPolicy treats client errors as final, retries 500 three times
// and backs off linearly twice on gateway errors.
func DefaultPolicy() Policy {
	return Policy{
		http.StatusBadRequest:          {Action: Terminal},
		http.StatusUnauthorized:        {Action: Terminal},
		http.StatusForbidden:           {Action: Terminal},
		http.StatusNotFound:            {Action: Terminal},
		http.StatusInternalServerError: {Action: Retry, Attempts: 3},
		http.StatusBadGateway:          {Action: Backoff, Attempts: 2, Step: 3 * time.Second},
		http.StatusServiceUnavailable:  {Action: Backoff, Attempts: 2, Step: 3 * time.Second},
		http.StatusGatewayTimeout:      {Action: Backoff, Attempts: 2, Step: 3 * time.Second},
	}
}

// delay reports whether the attempt-th retry (1-based) is allowed for status
// and how long to wait before issuing it.
func (p Policy) delay(status, attempt int) (time.Duration, bool) {
	rule, ok := p[status]
	if !ok || rule.Action == Terminal || attempt > rule.Attempts {
		return 0, false
	}
	if rule.Action == Backoff {
		return rule.Step * time.Duration(attempt), true
	}
	return 0, true
}
