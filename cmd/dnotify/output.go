package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SendResponse is printed after a message was delivered.
type SendResponse struct {
	Status    string `json:"status"`
	Mode      string `json:"mode"`
	ChannelID string `json:"channel_id"`
}

// DryRunResponse shows what would have been sent.
type DryRunResponse struct {
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	TargetID string `json:"target_id"`
	Content  string `json:"content"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// outputJSON writes a value as formatted JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError writes err to w in the selected format and returns the exit code.
func reportError(w io.Writer, err error, human bool) int {
	code := ExitError
	suggestion := ""
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
		suggestion = ee.suggestion
	}

	if human {
		fmt.Fprintf(w, "error: %s\n", err)
		if suggestion != "" {
			fmt.Fprintf(w, "suggestion: %s\n", suggestion)
		}
	} else {
		outputJSON(w, ErrorResponse{Error: err.Error(), Suggestion: suggestion})
	}
	return code
}
