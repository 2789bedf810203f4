// Command console talks to the assistant from a terminal, either in-process
// or through a running server's websocket.
package main

import (
	"errors"
	"os"

	"talksy/pkg/log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:           "console",
		Short:         "Talk to the Talksy assistant from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAskCmd(logger),
		newReplCmd(logger),
		newConnectCmd(logger),
		newTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
