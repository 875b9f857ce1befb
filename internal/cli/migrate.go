package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/output"
)

func NewMigrateCmd(deps *Dependencies) *cobra.Command {
	var (
		dir   string
		steps int
	)

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Long:      "Apply pending sql-migrate migrations, or roll them back with down.\nDown without --steps rolls back a single migration.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			down := args[0] == "down"
			if down && steps == 0 {
				steps = 1
			}
			if dir == "" {
				dir = deps.Config.Database.Migrations
			}

			db, err := database.NewPostgresDB(deps.Config)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			n, err := database.Migrate(db, dir, down, steps)
			if err != nil {
				return err
			}
			formatter.Success(fmt.Sprintf("Migrated %s: %d applied", args[0], n))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Migrations directory (defaults to DB_MIGRATIONS_DIR)")
	cmd.Flags().IntVar(&steps, "steps", 0, "Maximum migrations to apply (0 means all going up)")

	return cmd
}
