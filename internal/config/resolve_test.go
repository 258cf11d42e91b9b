package config

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		cli         CLIInput
		stored      *StoredConfig
		wantToken   string
		wantChannel string
		wantMissing []string
	}{
		{
			name:        "cli only",
			cli:         CLIInput{Token: "cli-token", ChannelID: "cli-channel"},
			wantToken:   "cli-token",
			wantChannel: "cli-channel",
		},
		{
			name:        "stored only",
			stored:      &StoredConfig{Token: "stored-token", Channel: "stored-channel"},
			wantToken:   "stored-token",
			wantChannel: "stored-channel",
		},
		{
			name:        "cli wins over stored",
			cli:         CLIInput{Token: "cli-token", ChannelID: "cli-channel"},
			stored:      &StoredConfig{Token: "stored-token", Channel: "stored-channel"},
			wantToken:   "cli-token",
			wantChannel: "cli-channel",
		},
		{
			name:        "fields resolve independently",
			cli:         CLIInput{ChannelID: "cli-channel"},
			stored:      &StoredConfig{Token: "stored-token", Channel: "stored-channel"},
			wantToken:   "stored-token",
			wantChannel: "cli-channel",
		},
		{
			name:        "missing token with channel available",
			cli:         CLIInput{ChannelID: "cli-channel"},
			stored:      &StoredConfig{Channel: "stored-channel"},
			wantMissing: []string{FieldToken},
		},
		{
			name:        "missing channel with token available",
			cli:         CLIInput{Token: "cli-token"},
			wantMissing: []string{FieldChannel},
		},
		{
			name:        "both missing without stored config",
			wantMissing: []string{FieldToken, FieldChannel},
		},
		{
			name:        "empty stored record",
			stored:      &StoredConfig{},
			wantMissing: []string{FieldToken, FieldChannel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.cli, tt.stored)

			if len(tt.wantMissing) > 0 {
				if err == nil {
					t.Fatalf("Resolve() = %+v, want error", got)
				}
				if !errors.Is(err, ErrMissing) {
					t.Errorf("errors.Is(err, ErrMissing) = false for %v", err)
				}
				var missingErr *MissingError
				if !errors.As(err, &missingErr) {
					t.Fatalf("error %T is not *MissingError", err)
				}
				if len(missingErr.Fields) != len(tt.wantMissing) {
					t.Fatalf("Fields = %v, want %v", missingErr.Fields, tt.wantMissing)
				}
				for _, f := range tt.wantMissing {
					if !missingErr.Has(f) {
						t.Errorf("Fields = %v, missing %q", missingErr.Fields, f)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", got.Token, tt.wantToken)
			}
			if got.ChannelID != tt.wantChannel {
				t.Errorf("ChannelID = %q, want %q", got.ChannelID, tt.wantChannel)
			}
		})
	}
}

func TestMissingError_Message(t *testing.T) {
	err := &MissingError{Fields: []string{FieldToken, FieldChannel}}
	want := "missing required configuration: token, channel"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
