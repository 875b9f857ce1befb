package cli

import (
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var (
		search string
		from   string
		to     string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			filters := repositories.MeetingFilters{Search: search, Limit: limit}
			if from != "" {
				t, err := parseDate(from)
				if err != nil {
					return err
				}
				filters.From = &t
			}
			if to != "" {
				t, err := parseDate(to)
				if err != nil {
					return err
				}
				filters.To = &t
			}

			svc, err := deps.Service(cmd.Context())
			if err != nil {
				return err
			}
			meetings, total, err := svc.List(cmd.Context(), filters)
			if err != nil {
				return err
			}

			if len(meetings) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			formatter.MeetingListHeader(total)
			for _, m := range meetings {
				formatter.MeetingListItem(m)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "Search title, participants and transcript")
	cmd.Flags().StringVar(&from, "from", "", "Earliest meeting date")
	cmd.Flags().StringVar(&to, "to", "", "Latest meeting date")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of meetings")

	return cmd
}
