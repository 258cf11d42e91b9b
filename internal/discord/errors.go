package discord

import (
	"errors"
	"fmt"
)

// Stages of a dispatch, used to report where a run failed.
const (
	StageOpenDM = "open DM channel"
	StagePost   = "post message"
)

// Common errors returned by the Discord client.
var (
	// ErrNetwork indicates the request never produced a response.
	ErrNetwork = errors.New("network error communicating with Discord")

	// ErrMalformedResponse indicates a successful response without the expected shape.
	ErrMalformedResponse = errors.New("malformed response from Discord")
)

// HTTPError is returned when Discord answers with a non-2xx status.
type HTTPError struct {
	Stage      string
	StatusCode int
	Status     string
	Message    string // Discord's "message" field, when the body carried one
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: Discord API error (status %d): %s", e.Stage, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: Discord API error (status %d)", e.Stage, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsAuthError returns true if Discord rejected the token.
func IsAuthError(err error) bool {
	code := StatusCode(err)
	return code == 401 || code == 403
}
