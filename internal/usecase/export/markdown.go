package export

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

const humanDate = "January 02, 2006 15:04"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// cell makes a value safe inside a markdown table row
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func bullets(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func (e *Exporter) markdown(m *entities.Meeting, opts Options) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Meeting Minutes\n\n")
	b.WriteString("## Meeting Information\n\n")
	fmt.Fprintf(&b, "- **Title:** %s\n", m.Title)
	fmt.Fprintf(&b, "- **Date:** %s\n", m.Date.Format(humanDate))
	fmt.Fprintf(&b, "- **Participants:** %s\n", orNA(strings.Join(m.Participants, ", ")))
	fmt.Fprintf(&b, "- **Agenda:** %s\n\n", orNA(m.AgendaText()))

	mm := m.MinutesOrEmpty()
	bullets(&b, "Executive Summary", mm.Summary)
	bullets(&b, "Key Decisions", mm.Decisions)

	if len(mm.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		b.WriteString("| Owner | Action | Due Date | Status |\n")
		b.WriteString("|-------|--------|----------|--------|\n")
		for _, item := range mm.ActionItems {
			due := "TBD"
			if item.DueDate != nil && strings.TrimSpace(*item.DueDate) != "" {
				due = *item.DueDate
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(item.Owner), cell(item.Task), cell(due), cell(item.Status))
		}
		b.WriteString("\n")
	}

	bullets(&b, "Risks & Open Questions", mm.Risks)

	if mm.Notes != nil && strings.TrimSpace(*mm.Notes) != "" {
		fmt.Fprintf(&b, "## Additional Notes\n\n%s\n\n", *mm.Notes)
	}

	if opts.IncludeTranscript && len(m.Transcript) > 0 {
		b.WriteString("## Meeting Transcript\n\n")
		current := ""
		for i, seg := range m.Transcript {
			if opts.IncludeSpeakerLabels && (i == 0 || seg.Speaker != current) {
				fmt.Fprintf(&b, "\n**%s**\n\n", seg.Speaker)
				current = seg.Speaker
			}
			if opts.IncludeTimestamps {
				fmt.Fprintf(&b, "[%s] %s\n\n", minutes.FormatTimestamp(seg.Start), seg.Text)
			} else {
				fmt.Fprintf(&b, "%s\n\n", seg.Text)
			}
		}
	}

	fmt.Fprintf(&b, "---\n\n*Generated by Meeting Minutes Generator on %s*\n", e.now().Format(humanDate))
	return []byte(b.String()), nil
}
