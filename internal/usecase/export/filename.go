package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

const maxTitleRunes = 50

// SafeTitle keeps letters, digits, spaces, '-' and '_', turns spaces into
// underscores and cuts the result to 50 characters
func SafeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxTitleRunes {
		runes = runes[:maxTitleRunes]
	}
	return string(runes)
}

// Filename builds YYYYMMDD_<safe title>_HHMMSS.<ext> from the meeting date and export time
func Filename(meeting *entities.Meeting, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		meeting.Date.Format("20060102"),
		SafeTitle(meeting.Title),
		now.Format("150405"),
		ext,
	)
}
