package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"talksy/internal/config"
	"talksy/internal/dispatcher"
	"talksy/pkg/clock"
	"talksy/pkg/httpclient"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// answerFunc answers one utterance; done reports that the session should end.
type answerFunc func(ctx context.Context, utterance string) (reply string, done bool, err error)

func newLocalDispatcher(log *logrus.Logger, withDB bool) (*dispatcher.Dispatcher, error) {
	opts := []config.ServerOption{
		config.WithFiber(config.NewFiber(log)),
		config.WithLogger(log),
		config.WithValidator(config.NewValidator()),
		config.WithMiddleware(),
		config.WithHTTPClient(httpclient.TimeoutFromEnv()),
		config.WithRedisServer(),
		config.WithGeminiClient(),
		config.WithUtils(),
	}
	if withDB {
		opts = append(opts, config.WithDatabase())
	}

	server, err := config.NewServer(opts...)
	if err != nil {
		return nil, err
	}
	if err := server.RegisterHandler(); err != nil {
		return nil, err
	}
	return server.Dispatcher(), nil
}

func localAnswer(d *dispatcher.Dispatcher) answerFunc {
	return func(ctx context.Context, utterance string) (string, bool, error) {
		reply := d.Dispatch(ctx, utterance)
		return reply, reply == dispatcher.FarewellReply, nil
	}
}

func newAskCmd(log *logrus.Logger) *cobra.Command {
	var withDB bool

	cmd := &cobra.Command{
		Use:   "ask <utterance>",
		Short: "Dispatch a single utterance and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newLocalDispatcher(log, withDB)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), d.Dispatch(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withDB, "with-db", false, "connect to Postgres so reminders are stored")
	return cmd
}

func newReplCmd(log *logrus.Logger) *cobra.Command {
	var withDB bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session with the in-process assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newLocalDispatcher(log, withDB)
			if err != nil {
				return err
			}

			greeting := clock.New().Greeting(envOr("USER", "Sir"), envOr("BOTNAME", "Talksy"))
			fmt.Fprintln(cmd.OutOrStdout(), greeting)
			return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), localAnswer(d))
		},
	}

	cmd.Flags().BoolVar(&withDB, "with-db", false, "connect to Postgres so reminders are stored")
	return cmd
}

// runREPL reads one utterance per line until input ends or answer reports
// the session is over. Blank lines are skipped.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, answer answerFunc) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, done, err := answer(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply)
		if done {
			return nil
		}
	}
}
