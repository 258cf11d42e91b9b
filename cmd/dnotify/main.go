// Package main provides the dnotify CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/matsen/dnotify/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Environment variables read when the matching flag is not given.
const (
	EnvChannelID = "DISCORD_CHANNEL_ID"
	EnvBotToken  = "DISCORD_BOT_TOKEN"
)

var (
	flagChannelID      string
	flagToken          string
	flagPrependMessage string
	flagStdin          bool
	flagDM             bool
	flagInit           bool
	flagConfigPath     string
	flagDryRun         bool
	flagVerbose        bool
	humanOutput        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so every failure is reported here
		os.Exit(reportError(os.Stderr, err, humanOutput))
	}
}

var rootCmd = &cobra.Command{
	Use:   "dnotify",
	Short: "Post a job completion notice to Discord",
	Long: `dnotify posts a "completed at <time>" message to a Discord channel,
or to a user by direct message, on behalf of a bot.

The token and target come from flags, then the environment
(DISCORD_BOT_TOKEN, DISCORD_CHANNEL_ID, also read from a .env file),
then the defaults saved by 'dnotify --init'.

Examples:
  make build; dnotify -c 123456789012345678
  ./train.sh 2>&1 | tail -n 20 | dnotify -i -p "training run"
  dnotify --dm -c 234567890123456789
  dnotify --init

Outputs JSON by default. Use --human for human-readable output.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	// Load .env file if present (for DISCORD_BOT_TOKEN)
	_ = godotenv.Load()

	flags := rootCmd.Flags()
	flags.StringVarP(&flagChannelID, "channel-id", "c", "", "Channel ID, or user ID with --dm (env "+EnvChannelID+")")
	flags.StringVarP(&flagToken, "token", "t", "", "Bot token (env "+EnvBotToken+")")
	flags.StringVarP(&flagPrependMessage, "prepend-message", "p", "", "Header line; the message body is fenced below it")
	flags.BoolVarP(&flagStdin, "stdin", "i", false, "Append everything read from stdin to the message")
	flags.BoolVarP(&flagDM, "dm", "d", false, "Send a direct message to the user ID instead of posting to a channel")
	flags.BoolVar(&flagInit, "init", false, "Prompt for a default channel and token and save them")
	flags.StringVar(&flagConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/dnotify/config.yml)")
	flags.BoolVar(&flagDryRun, "dry-run", false, "Print the message instead of sending it")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Log each request stage to stderr")
	flags.BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")

	rootCmd.Version = Version
}

// setupLogging installs the default logger on stderr.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// userAgent returns the User-Agent Discord expects from bot clients.
func userAgent() string {
	return fmt.Sprintf("DiscordBot (https://github.com/matsen/dnotify, %s)", Version)
}

func runRoot(cmd *cobra.Command, args []string) error {
	setupLogging(flagVerbose)
	store := config.NewFileStore(flagConfigPath)

	if flagInit {
		return runInit(cmd, store)
	}

	in := cliInput(os.Getenv)
	res, err := runNotify(cmd.Context(), in, flagDryRun, notifyDeps{
		stdin:     cmd.InOrStdin(),
		store:     store,
		now:       time.Now,
		newSender: newDiscordSender,
	})
	if err != nil {
		return err
	}
	return printNotifyResult(cmd.OutOrStdout(), res, humanOutput)
}
