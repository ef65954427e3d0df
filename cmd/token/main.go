package main

import (
	"fmt"
	"os"
	"time"

	"user_details/internal/auth"
	"user_details/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "token",
		Short: "Issue access tokens for the user details API",
	}
	root.AddCommand(newIssueCmd())
	return root
}

func newIssueCmd() *cobra.Command {
	var (
		userID int64
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a signed access token (uses JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id must be positive")
			}

			cfg := config.Load()
			token, err := auth.GenerateAccessToken(userID, cfg.JWT.Secret, ttl)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"ttl":     ttl,
			}).Debug("Issued access token")

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "user ID to embed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultAccessTokenTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
