package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matsen/dnotify/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runInit prompts for defaults and saves them, replacing the old file.
func runInit(cmd *cobra.Command, store *config.FileStore) error {
	prompter := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	if _, err := config.Initialize(prompter.Prompt, store); err != nil {
		return withExitCode(ExitError, fmt.Errorf("init: %w", err), "")
	}

	w := cmd.OutOrStdout()
	if humanOutput {
		fmt.Fprintf(w, "Saved defaults to %s\n", store.Path())
		return nil
	}
	return outputJSON(w, StatusResponse{Status: "initialized", Path: store.Path()})
}

// prompter reads answers line by line. On a terminal the token is read
// without echo.
type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	fd       int
	terminal bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.terminal = true
	}
	return p
}

// Prompt shows label and returns the raw answer, newline included.
func (p *prompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	if p.terminal && label == config.PromptToken {
		secret, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		// Accept a final answer without a trailing newline
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
