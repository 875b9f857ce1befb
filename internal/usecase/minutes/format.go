package minutes

import (
	"fmt"
	"math"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// FormatTimestamp renders seconds as MM:SS. Minutes are not wrapped into hours,
// so 3665 becomes "61:05".
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatTranscript renders segments grouped by consecutive speaker:
//
//	[00:00] Speaker 1:
//	  first line
//	  second line
//
//	[00:12] Speaker 2:
//	  reply
//
// Order and text are kept exactly as given.
func FormatTranscript(segments []entities.TranscriptSegment) string {
	lines := make([]string, 0, len(segments)*2)
	current := ""
	for i, seg := range segments {
		if i == 0 || seg.Speaker != current {
			lines = append(lines, fmt.Sprintf("\n[%s] %s:", FormatTimestamp(seg.Start), seg.Speaker))
			current = seg.Speaker
		}
		lines = append(lines, "  "+seg.Text)
	}
	return strings.Join(lines, "\n")
}
