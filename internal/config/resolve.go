package config

import (
	"errors"
	"fmt"
	"strings"
)

// Field names reported in MissingError.
const (
	FieldToken   = "token"
	FieldChannel = "channel"
)

// ErrMissing is wrapped by MissingError.
var ErrMissing = errors.New("missing required configuration")

// MissingError names every required value that no source supplied.
type MissingError struct {
	Fields []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissing, strings.Join(e.Fields, ", "))
}

func (e *MissingError) Unwrap() error {
	return ErrMissing
}

// Has reports whether field is among the missing ones.
func (e *MissingError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// CLIInput holds the values supplied on the command line. Token and ChannelID
// have already absorbed their environment variables when the flag was unset.
type CLIInput struct {
	ChannelID      string
	Token          string
	PrependMessage string
	ReadStdin      bool
	DM             bool
	Init           bool
}

// Resolved is the final token and target after applying source precedence.
type Resolved struct {
	Token     string
	ChannelID string
}

// Resolve merges cli over stored. stored may be nil when no config file exists.
// Both fields are resolved before failing so the error names all missing values.
func Resolve(cli CLIInput, stored *StoredConfig) (Resolved, error) {
	var storedToken, storedChannel string
	if stored != nil {
		storedToken = stored.Token
		storedChannel = stored.Channel
	}

	token, tokenOK := firstPresent(cli.Token, storedToken)
	channel, channelOK := firstPresent(cli.ChannelID, storedChannel)

	var missing []string
	if !tokenOK {
		missing = append(missing, FieldToken)
	}
	if !channelOK {
		missing = append(missing, FieldChannel)
	}
	if len(missing) > 0 {
		return Resolved{}, &MissingError{Fields: missing}
	}

	return Resolved{Token: token, ChannelID: channel}, nil
}

// firstPresent returns the first non-empty value in precedence order.
func firstPresent(values ...string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}
