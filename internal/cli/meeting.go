package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/output"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid meeting id %q", arg)
	}
	return id, nil
}

func NewExportCmd(deps *Dependencies) *cobra.Command {
	var (
		format       string
		outDir       string
		noTranscript bool
		noTimestamps bool
		noSpeakers   bool
		publish      bool
	)

	cmd := &cobra.Command{
		Use:   "export <meeting-id>",
		Short: "Export a meeting as markdown, xlsx, yaml or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			opts := export.DefaultOptions(format)
			opts.IncludeTranscript = !noTranscript
			opts.IncludeTimestamps = !noTimestamps
			opts.IncludeSpeakerLabels = !noSpeakers

			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}
			result, err := svc.Export(cmd.Context(), id, meeting.ExportInput{Options: opts, Publish: publish})
			if err != nil {
				return err
			}

			if publish {
				formatter.ExportPublished(result.ObjectKey, result.URL)
				return nil
			}
			path, err := writeDocument(outDir, result.Document)
			if err != nil {
				return err
			}
			formatter.ExportSaved(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMarkdown, "markdown, xlsx, yaml or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "Leave the transcript out")
	cmd.Flags().BoolVar(&noTimestamps, "no-timestamps", false, "Leave segment timestamps out")
	cmd.Flags().BoolVar(&noSpeakers, "no-speakers", false, "Leave speaker labels out")
	cmd.Flags().BoolVar(&publish, "publish", false, "Upload to object storage and print a presigned URL")

	return cmd
}

func NewRenameCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <meeting-id> <old=new>...",
		Short:   "Rename transcript speakers",
		Example: `  minutes rename 7c9e... "Speaker 1=Ana" "Speaker 2=Bo"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			mapping, err := parseMapping(args[1:])
			if err != nil {
				return err
			}

			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}
			_, changed, err := svc.RenameSpeakers(cmd.Context(), id, mapping)
			if err != nil {
				return err
			}
			formatter.Success(fmt.Sprintf("Renamed %d segments", changed))
			return nil
		},
	}
}

func parseMapping(pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid mapping %q, use old=new", pair)
		}
		mapping[from] = to
	}
	return mapping, nil
}

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <meeting-id>",
		Short: "Re-run minutes extraction over the stored transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}
			m, err := svc.Regenerate(cmd.Context(), id)
			if err != nil {
				return err
			}
			formatter.MeetingSaved(m)
			return nil
		},
	}
}

func NewCleanupCmd(deps *Dependencies) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete audio older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			if !cmd.Flags().Changed("days") {
				days = deps.Config.Pipeline.AudioRetentionDays
			}
			if days <= 0 {
				formatter.Info("Audio retention is disabled")
				return nil
			}

			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := svc.CleanupExpiredAudio(cmd.Context(), days)
			if err != nil {
				return err
			}
			formatter.Success(fmt.Sprintf("Removed audio of %d meetings older than %d days", removed, days))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (defaults to AUDIO_RETENTION_DAYS)")

	return cmd
}
