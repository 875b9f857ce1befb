package output

import (
	"fmt"
	"io"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Processing(path string) {
	fmt.Fprintf(f.w, "🎙️  Processing %s (transcribe, attribute speakers, extract minutes)...\n", path)
}

func (f *Formatter) MeetingSaved(m *entities.Meeting) {
	minutes := m.MinutesOrEmpty()
	fmt.Fprintf(f.w, "✅ Meeting saved: %s\n", m.ID)
	fmt.Fprintf(f.w, "   %s, %s, %d segments, %d speakers\n",
		m.Title, formatDuration(seconds(m.DurationSeconds)), len(m.Transcript), len(m.Speakers()))
	if minutes.IsEmpty() {
		fmt.Fprintf(f.w, "   📝 No minutes extracted\n")
		return
	}
	fmt.Fprintf(f.w, "   📝 %d summary points, %d decisions, %d action items, %d risks\n",
		len(minutes.Summary), len(minutes.Decisions), len(minutes.ActionItems), len(minutes.Risks))
}

func (f *Formatter) ExportSaved(path string) {
	fmt.Fprintf(f.w, "✅ Export saved: %s\n", path)
}

func (f *Formatter) ExportPublished(key, url string) {
	fmt.Fprintf(f.w, "☁️  Export published: %s\n", key)
	if url != "" {
		fmt.Fprintf(f.w, "🔗 %s\n", url)
	}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) MeetingListHeader(total int64) {
	fmt.Fprintf(f.w, "📁 Meetings (%d):\n\n", total)
}

func (f *Formatter) MeetingListItem(m *entities.Meeting) {
	status := ""
	if !m.MinutesOrEmpty().IsEmpty() {
		status = " ✅"
	} else if len(m.Transcript) > 0 {
		status = " 📝"
	}
	fmt.Fprintf(f.w, "  %s  %s  %s%s\n", m.ID, m.Date.Format("2006-01-02"), m.Title, status)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func (f *Formatter) Token(token string, ttl time.Duration) {
	fmt.Fprintf(f.w, "🔑 Token valid for %s:\n%s\n", formatDuration(ttl), token)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
