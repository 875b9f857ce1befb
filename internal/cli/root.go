package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/app"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/version"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Open builds the application on first use so that commands like
	// token and doctor work without a database
	Open func(ctx context.Context) (*app.App, error)
	// Meetings, when set, is used instead of the service built by Open
	Meetings meeting.Service

	app *app.App
}

// Service returns the meeting service, opening the application if needed
func (d *Dependencies) Service(ctx context.Context) (meeting.Service, error) {
	if d.Meetings != nil {
		return d.Meetings, nil
	}
	if d.app == nil {
		if d.Open == nil {
			return nil, fmt.Errorf("application is not configured")
		}
		a, err := d.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("initializing app: %w", err)
		}
		d.app = a
	}
	return d.app.Meetings, nil
}

// Close releases whatever Service opened
func (d *Dependencies) Close() error {
	if d.app == nil {
		return nil
	}
	return d.app.Close()
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "minutes",
		Short:         "Turn meeting recordings into transcripts and minutes",
		Long:          "A CLI that transcribes meeting audio, attributes speakers, extracts structured minutes with an LLM and exports them as markdown, xlsx, yaml or json.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewRenameCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))
	rootCmd.AddCommand(NewCleanupCmd(deps))
	rootCmd.AddCommand(NewMigrateCmd(deps))
	rootCmd.AddCommand(NewTokenCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
