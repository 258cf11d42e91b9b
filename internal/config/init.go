package config

import (
	"fmt"
	"strings"
)

// Prompt labels shown by Initialize.
const (
	PromptChannel = "Default channel or user ID"
	PromptToken   = "Bot token"
)

// PromptFunc asks the user for a value and returns the raw answer.
type PromptFunc func(label string) (string, error)

// Initialize asks for a default channel and token and saves them, replacing
// any stored defaults. Answers are trimmed; nothing is merged with the old file.
func Initialize(prompt PromptFunc, store Store) (*StoredConfig, error) {
	channel, err := prompt(PromptChannel)
	if err != nil {
		return nil, fmt.Errorf("reading channel: %w", err)
	}

	token, err := prompt(PromptToken)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}

	cfg := &StoredConfig{
		Channel: strings.TrimSpace(channel),
		Token:   strings.TrimSpace(token),
	}
	if err := store.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
