package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/matsen/dnotify/internal/config"
	"github.com/matsen/dnotify/internal/discord"
	"github.com/matsen/dnotify/internal/message"
)

// notifyDeps are the outside collaborators of a notify run.
type notifyDeps struct {
	stdin     io.Reader
	store     config.Store
	now       func() time.Time
	newSender func(token string) discord.Sender
}

// notifyResult describes what a run sent, or would have sent with --dry-run.
type notifyResult struct {
	Mode      discord.Mode
	TargetID  string
	ChannelID string
	Content   string
	DryRun    bool
}

// cliInput collects the flag values, falling back to the environment for
// the channel and token when their flags were not given.
func cliInput(getenv func(string) string) config.CLIInput {
	return config.CLIInput{
		ChannelID:      orEnv(flagChannelID, EnvChannelID, getenv),
		Token:          orEnv(flagToken, EnvBotToken, getenv),
		PrependMessage: flagPrependMessage,
		ReadStdin:      flagStdin,
		DM:             flagDM,
		Init:           flagInit,
	}
}

// orEnv returns value, or the environment variable key if value is empty.
func orEnv(value, key string, getenv func(string) string) string {
	if value != "" {
		return value
	}
	return getenv(key)
}

// newDiscordSender builds the real API client.
func newDiscordSender(token string) discord.Sender {
	return discord.NewClient(token, discord.WithUserAgent(userAgent()))
}

// runNotify resolves configuration, builds the message and dispatches it.
// Configuration is fully resolved before anything is read from stdin or sent.
func runNotify(ctx context.Context, in config.CLIInput, dryRun bool, deps notifyDeps) (*notifyResult, error) {
	stored, err := deps.store.Load()
	if err != nil {
		return nil, withExitCode(ExitConfigError, err, "")
	}

	resolved, err := config.Resolve(in, stored)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err, missingSuggestion(err))
	}

	var stdinText string
	if in.ReadStdin {
		stdinText, err = message.ReadInput(deps.stdin)
		if err != nil {
			return nil, withExitCode(ExitError, err, "")
		}
	}

	content := message.Build(message.Timestamp(deps.now()), in.ReadStdin, stdinText, in.PrependMessage)
	res := &notifyResult{
		Mode:     discord.ModeFor(in.DM),
		TargetID: resolved.ChannelID,
		Content:  content,
		DryRun:   dryRun,
	}

	if dryRun {
		return res, nil
	}

	slog.DebugContext(ctx, "dispatching", "mode", res.Mode.String(), "target_id", res.TargetID)
	channelID, err := discord.Dispatch(ctx, deps.newSender(resolved.Token), res.Mode, resolved.ChannelID, content)
	if err != nil {
		return nil, withExitCode(ExitDispatchError, err, dispatchSuggestion(err))
	}
	res.ChannelID = channelID
	return res, nil
}

// missingSuggestion tells the user where each missing value can come from.
func missingSuggestion(err error) string {
	var missing *config.MissingError
	if !errors.As(err, &missing) {
		return ""
	}
	if missing.Has(config.FieldToken) && missing.Has(config.FieldChannel) {
		return fmt.Sprintf("pass --token and --channel-id, set %s and %s, or run 'dnotify --init'", EnvBotToken, EnvChannelID)
	}
	if missing.Has(config.FieldToken) {
		return fmt.Sprintf("pass --token, set %s, or run 'dnotify --init'", EnvBotToken)
	}
	return fmt.Sprintf("pass --channel-id, set %s, or run 'dnotify --init'", EnvChannelID)
}

// dispatchSuggestion hints at the usual cause of a failed dispatch.
func dispatchSuggestion(err error) string {
	switch {
	case discord.IsAuthError(err):
		return "check that the bot token is valid and the bot can see the target"
	case errors.Is(err, discord.ErrMalformedResponse):
		return "Discord answered the DM request without a channel id; check that the target is a user ID"
	}
	return ""
}

// printNotifyResult writes the outcome of a run.
func printNotifyResult(w io.Writer, res *notifyResult, human bool) error {
	if res.DryRun {
		if human {
			fmt.Fprintf(w, "Would send (%s to %s):\n%s\n", res.Mode, res.TargetID, res.Content)
			return nil
		}
		return outputJSON(w, DryRunResponse{
			Status:   "dry_run",
			Mode:     res.Mode.String(),
			TargetID: res.TargetID,
			Content:  res.Content,
		})
	}

	if human {
		fmt.Fprintf(w, "Sent %s message to channel %s\n", res.Mode, res.ChannelID)
		return nil
	}
	return outputJSON(w, SendResponse{
		Status:    "sent",
		Mode:      res.Mode.String(),
		ChannelID: res.ChannelID,
	})
}
