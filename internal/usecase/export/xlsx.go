package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

const (
	sheetMinutes    = "Minutes"
	sheetActions    = "Action Items"
	sheetTranscript = "Transcript"
)

type sheetWriter struct {
	f    *excelize.File
	bold int
}

func (w *sheetWriter) row(sheet string, row int, values ...interface{}) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cellName, &values)
}

func (w *sheetWriter) header(sheet string, row int, values ...interface{}) error {
	if err := w.row(sheet, row, values...); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	return w.f.SetCellStyle(sheet, first, last, w.bold)
}

func (e *Exporter) xlsx(m *entities.Meeting, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetMinutes); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, bold: bold}

	if err := w.minutesSheet(m); err != nil {
		return nil, fmt.Errorf("minutes sheet: %w", err)
	}
	if err := w.actionSheet(m.MinutesOrEmpty().ActionItems); err != nil {
		return nil, fmt.Errorf("action items sheet: %w", err)
	}
	if opts.IncludeTranscript {
		if err := w.transcriptSheet(m.Transcript, opts); err != nil {
			return nil, fmt.Errorf("transcript sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (w *sheetWriter) minutesSheet(m *entities.Meeting) error {
	mm := m.MinutesOrEmpty()
	row := 1
	info := [][2]string{
		{"Title", m.Title},
		{"Date", m.Date.Format(humanDate)},
		{"Participants", orNA(strings.Join(m.Participants, ", "))},
		{"Agenda", orNA(m.AgendaText())},
	}
	for _, kv := range info {
		if err := w.header(sheetMinutes, row, kv[0]); err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheetMinutes, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return err
		}
		row++
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Executive Summary", mm.Summary},
		{"Key Decisions", mm.Decisions},
		{"Risks & Open Questions", mm.Risks},
	}
	for _, s := range sections {
		row++
		if err := w.header(sheetMinutes, row, s.title); err != nil {
			return err
		}
		row++
		for _, item := range s.items {
			if err := w.row(sheetMinutes, row, "", item); err != nil {
				return err
			}
			row++
		}
	}
	if mm.Notes != nil && *mm.Notes != "" {
		row++
		if err := w.header(sheetMinutes, row, "Additional Notes"); err != nil {
			return err
		}
		if err := w.row(sheetMinutes, row+1, "", *mm.Notes); err != nil {
			return err
		}
	}
	if err := w.f.SetColWidth(sheetMinutes, "A", "A", 24); err != nil {
		return err
	}
	return w.f.SetColWidth(sheetMinutes, "B", "B", 80)
}

func (w *sheetWriter) actionSheet(items []entities.ActionItem) error {
	if _, err := w.f.NewSheet(sheetActions); err != nil {
		return err
	}
	if err := w.header(sheetActions, 1, "Owner", "Action", "Due Date", "Status", "Confidence"); err != nil {
		return err
	}
	for i, item := range items {
		due := "TBD"
		if item.DueDate != nil && *item.DueDate != "" {
			due = *item.DueDate
		}
		if err := w.row(sheetActions, i+2, item.Owner, item.Task, due, item.Status, item.Confidence); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(sheetActions, "B", "B", 60)
}

func (w *sheetWriter) transcriptSheet(segments []entities.TranscriptSegment, opts Options) error {
	if _, err := w.f.NewSheet(sheetTranscript); err != nil {
		return err
	}
	cols := []interface{}{}
	if opts.IncludeTimestamps {
		cols = append(cols, "Time")
	}
	if opts.IncludeSpeakerLabels {
		cols = append(cols, "Speaker")
	}
	cols = append(cols, "Text")
	if err := w.header(sheetTranscript, 1, cols...); err != nil {
		return err
	}

	for i, seg := range segments {
		values := []interface{}{}
		if opts.IncludeTimestamps {
			values = append(values, minutes.FormatTimestamp(seg.Start))
		}
		if opts.IncludeSpeakerLabels {
			values = append(values, seg.Speaker)
		}
		values = append(values, seg.Text)
		if err := w.row(sheetTranscript, i+2, values...); err != nil {
			return err
		}
	}
	return nil
}
