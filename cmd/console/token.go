package main

import (
	"fmt"
	"os"
	"time"

	"talksy/internal/entity"
	jwtPkg "talksy/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		operator entity.OperatorLoginData
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the messaging API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if operator.ID == "" {
				operator.ID = uuid.NewString()
			}

			token, exp, err := jwtPkg.SignOperator(operator, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(exp, 0).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&operator.Username, "username", envOr("USER", "operator"), "operator username")
	cmd.Flags().StringVar(&operator.Email, "email", "", "operator email")
	cmd.Flags().StringVar(&operator.ID, "id", "", "operator id (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
