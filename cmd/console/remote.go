package main

import (
	"context"
	"fmt"

	websocketPkg "talksy/pkg/websocket"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newConnectCmd(log *logrus.Logger) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Start an interactive session over a running server's websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := websocketPkg.NewAssistantClient(url, log)
			if err := client.Reconnect(); err != nil {
				return err
			}
			defer client.CloseConnections()

			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", url)
			return runREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), socketAnswer(client))
		},
	}

	cmd.Flags().StringVar(&url, "url", "ws://localhost:3000/api/v1/assistant/ws", "assistant websocket URL")
	return cmd
}

func socketAnswer(client websocketPkg.IWebsocket) answerFunc {
	return func(ctx context.Context, utterance string) (string, bool, error) {
		reply, err := client.Ask(ctx, utterance)
		if err != nil {
			return "", false, err
		}
		return reply.Response, reply.Exit, nil
	}
}
