package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/output"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

func NewTokenCmd(deps *Dependencies) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			cfg := deps.Config.JWT
			if !cfg.Enabled {
				formatter.Warning("AUTH_ENABLED=false, the API does not check tokens")
			}
			if ttl <= 0 {
				ttl = cfg.AccessExpiry
			}

			manager := jwt.NewManager(cfg.AccessSecret, cfg.AccessExpiry, cfg.Issuer)
			token, err := manager.GenerateAccessToken(subject, role, ttl)
			if err != nil {
				return err
			}
			formatter.Token(token, ttl)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().StringVar(&role, "role", jwt.RoleEditor, "editor or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Lifetime (defaults to JWT_ACCESS_EXPIRY)")

	return cmd
}
