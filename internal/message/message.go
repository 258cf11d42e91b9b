// Package message builds the text posted when a job finishes.
package message

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// TimestampLayout is the format of the time stamped into the completion marker.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// maxLineSize bounds a single captured stdin line.
const maxLineSize = 1024 * 1024

// Timestamp formats t for the completion marker.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Build returns the message content.
//
// The base is "completed at <timestamp>". When stdin was requested the
// captured text follows after a blank line, even if it is empty. A non-empty
// header quotes the header on the first line and fences the base below it.
func Build(timestamp string, stdinRequested bool, stdinText, header string) string {
	base := "completed at " + timestamp
	if stdinRequested {
		base += "\n\n" + stdinText
	}

	if header == "" {
		return base
	}
	return fmt.Sprintf("> %s\n```\n%s\n```", header, base)
}

// ReadInput reads all lines from r and joins them with "\n".
// A trailing newline in the input is not kept.
func ReadInput(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
