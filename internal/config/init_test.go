package config

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
)

// scriptedPrompt answers prompts in order from answers.
func scriptedPrompt(answers ...string) PromptFunc {
	i := 0
	return func(label string) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		a := answers[i]
		i++
		return a, nil
	}
}

func TestInitialize_TrimsAndSaves(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.yml"))

	cfg, err := Initialize(scriptedPrompt("  123456 \n", "\tbot-token\n"), store)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if cfg.Channel != "123456" {
		t.Errorf("Channel = %q, want 123456", cfg.Channel)
	}
	if cfg.Token != "bot-token" {
		t.Errorf("Token = %q, want bot-token", cfg.Token)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil || loaded.Channel != "123456" || loaded.Token != "bot-token" {
		t.Errorf("Load() = %+v, want saved values", loaded)
	}
}

func TestInitialize_Overwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.yml"))

	if _, err := Initialize(scriptedPrompt("first-channel", "first-token"), store); err != nil {
		t.Fatalf("first Initialize() error = %v", err)
	}
	// An empty answer replaces the old value rather than keeping it.
	if _, err := Initialize(scriptedPrompt("second-channel", ""), store); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Channel != "second-channel" {
		t.Errorf("Channel = %q, want second-channel", loaded.Channel)
	}
	if loaded.Token != "" {
		t.Errorf("Token = %q, want empty", loaded.Token)
	}
}

func TestInitialize_PromptOrder(t *testing.T) {
	var labels []string
	prompt := func(label string) (string, error) {
		labels = append(labels, label)
		return "x", nil
	}

	store := NewFileStore(filepath.Join(t.TempDir(), "config.yml"))
	if _, err := Initialize(prompt, store); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if len(labels) != 2 || labels[0] != PromptChannel || labels[1] != PromptToken {
		t.Errorf("prompts = %v, want [%s %s]", labels, PromptChannel, PromptToken)
	}
}

func TestInitialize_PromptError(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.yml"))

	_, err := Initialize(scriptedPrompt("only-channel"), store)
	if !errors.Is(err, io.EOF) {
		t.Errorf("Initialize() error = %v, want io.EOF", err)
	}
	if store.Exists() {
		t.Error("store written despite prompt failure")
	}
}

type failingStore struct{}

func (failingStore) Load() (*StoredConfig, error) { return nil, nil }
func (failingStore) Save(*StoredConfig) error     { return errors.New("disk full") }
func (failingStore) Exists() bool                 { return false }

func TestInitialize_SaveError(t *testing.T) {
	_, err := Initialize(scriptedPrompt("c", "t"), failingStore{})
	if err == nil {
		t.Error("Initialize() expected error when store fails")
	}
}
