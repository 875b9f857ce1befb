package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/output"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var (
		title        string
		date         string
		participants []string
		agenda       string
		speakers     int
		language     string
		format       string
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe a recording and extract minutes",
		Long:  "Transcribe a recording, attribute speakers and extract minutes, then store the meeting.\nUse --export to also write the result next to the recording or into --out.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			audioPath := args[0]

			meetingDate, err := parseDate(date)
			if err != nil {
				return err
			}
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
			}

			input := meeting.ProcessInput{
				Title:        title,
				Date:         meetingDate,
				Participants: participants,
				AudioPath:    audioPath,
				Language:     language,
			}
			if agenda != "" {
				input.Agenda = &agenda
			}
			if speakers > 0 {
				input.ExpectedSpeakers = &speakers
			}

			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}

			formatter.Processing(audioPath)
			m, err := svc.Process(cmd.Context(), input)
			if err != nil {
				return err
			}
			formatter.MeetingSaved(m)

			if format == "" {
				return nil
			}
			if outDir == "" {
				outDir = filepath.Dir(audioPath)
			}
			result, err := svc.Export(cmd.Context(), m.ID, meeting.ExportInput{Options: export.DefaultOptions(format)})
			if err != nil {
				return err
			}
			path, err := writeDocument(outDir, result.Document)
			if err != nil {
				return err
			}
			formatter.ExportSaved(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Meeting title (defaults to the file name)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Meeting date, RFC 3339 or YYYY-MM-DD (defaults to now)")
	cmd.Flags().StringSliceVarP(&participants, "participants", "p", nil, "Participant names")
	cmd.Flags().StringVarP(&agenda, "agenda", "a", "", "Agenda, passed to minutes extraction as context")
	cmd.Flags().IntVarP(&speakers, "speakers", "s", 0, "Expected number of speakers (0 lets diarization decide)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Transcription language (defaults to TRANSCRIPTION_LANGUAGE)")
	cmd.Flags().StringVarP(&format, "export", "e", "", "Also export as markdown, xlsx, yaml or json")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Export directory (defaults to the recording's directory)")

	return cmd
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates; empty means now
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

func writeDocument(dir string, doc *export.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
