package main

import (
	"context"
	"os"
	rtdebug "runtime/debug"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	getcompletions "github.com/walteh/djtmpls/cmd/djtmpls/get-completions"
	gettokens "github.com/walteh/djtmpls/cmd/djtmpls/get-tokens"
	watchcmd "github.com/walteh/djtmpls/cmd/djtmpls/watch"
	"github.com/walteh/djtmpls/pkg/debug"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var (
		logLevel   string
		prettyLogs bool
	)

	rootCmd := &cobra.Command{
		Use:   "djtmpls",
		Short: "Highlight and complete the block tags of Django templates",
	}

	info, ok := rtdebug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum level to log (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "human readable logs instead of json")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logger := debug.NewLogger(os.Stderr, debug.Options{
			Level:  debug.ParseLevel(logLevel),
			Pretty: prettyLogs,
			Color:  prettyLogs && !color.NoColor,
		}).With().
			Str("run_id", uuid.NewString()).
			Str("command", cmd.Name()).
			Logger()

		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)
	rootCmd.AddCommand(gettokens.NewGetTokensCommand())
	rootCmd.AddCommand(getcompletions.NewGetCompletionsCommand())
	rootCmd.AddCommand(watchcmd.NewWatchCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
