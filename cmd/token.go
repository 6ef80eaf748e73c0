package main

import (
	"fmt"
	"time"

	"recruitcrm/internal/auth"
	"recruitcrm/internal/config"

	"github.com/spf13/cobra"
)

func newTokenCmd(load configLoader) *cobra.Command {
	var (
		tenantID string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token (AUTH_MODE=hmac only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Auth.Mode != config.AuthModeHMAC {
				return fmt.Errorf("token requires AUTH_MODE=%s", config.AuthModeHMAC)
			}
			if cfg.Auth.HMACSecret == "" {
				return fmt.Errorf("AUTH_HMAC_SECRET must be set so the server accepts the token")
			}
			if ttl <= 0 {
				ttl = cfg.Auth.DevTokenTTL
			}
			token, err := auth.NewHMACVerifier(cfg.Auth.HMACSecret).IssueToken(tenantID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant id placed in the token subject (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default AUTH_DEV_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
