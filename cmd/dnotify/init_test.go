package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/dnotify/internal/config"
)

func TestPrompter_ReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("123\n tok \n"), &out)

	first, err := p.Prompt(config.PromptChannel)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if first != "123\n" {
		t.Errorf("first answer = %q, want %q", first, "123\n")
	}

	second, err := p.Prompt(config.PromptToken)
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if second != " tok \n" {
		t.Errorf("second answer = %q", second)
	}

	if !strings.Contains(out.String(), config.PromptChannel+": ") {
		t.Errorf("prompt output = %q", out.String())
	}
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("abc"), io.Discard)
	got, err := p.Prompt("x")
	if err != nil || got != "abc" {
		t.Errorf("Prompt() = %q, %v; want abc, nil", got, err)
	}

	_, err = p.Prompt("y")
	if !errors.Is(err, io.EOF) {
		t.Errorf("Prompt() error = %v, want io.EOF", err)
	}
}

func TestInitWithPrompter_Overwrites(t *testing.T) {
	store := config.NewFileStore(filepath.Join(t.TempDir(), "config.yml"))
	if err := store.Save(&config.StoredConfig{Channel: "old", Token: "old-tok"}); err != nil {
		t.Fatal(err)
	}

	p := newPrompter(strings.NewReader(" new-chan \nnew-tok\n"), io.Discard)
	if _, err := config.Initialize(p.Prompt, store); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Channel != "new-chan" || got.Token != "new-tok" {
		t.Errorf("stored = %+v, want new-chan/new-tok", got)
	}
}
