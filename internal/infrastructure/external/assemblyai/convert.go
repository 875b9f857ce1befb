package assemblyai

import (
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func msToSeconds(p *int64) float64 {
	if p == nil {
		return 0
	}
	return float64(*p) / 1000.0
}

// speakerLabel maps AssemblyAI's "A", "B", ... onto "Speaker A", "Speaker B"
func speakerLabel(p *string) string {
	label := strings.TrimSpace(str(p))
	if label == "" {
		return entities.DefaultSpeaker
	}
	return "Speaker " + label
}

// toSegments converts utterances (or the whole text when diarization was off)
// into transcript segments. Utterances with blank text are skipped.
func toSegments(t aai.Transcript) []entities.TranscriptSegment {
	segments := make([]entities.TranscriptSegment, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		seg, err := entities.NewTranscriptSegment(msToSeconds(u.Start), msToSeconds(u.End), str(u.Text))
		if err != nil {
			continue
		}
		if u.Confidence != nil {
			seg = seg.WithConfidence(*u.Confidence)
		}
		segments = append(segments, seg)
	}
	if len(segments) > 0 {
		return segments
	}

	// No utterances: fall back to word timing bounds around the full text
	if len(t.Words) == 0 {
		return segments
	}
	first, last := t.Words[0], t.Words[len(t.Words)-1]
	seg, err := entities.NewTranscriptSegment(msToSeconds(first.Start), msToSeconds(last.End), str(t.Text))
	if err != nil {
		return segments
	}
	if t.Confidence != nil {
		seg = seg.WithConfidence(*t.Confidence)
	}
	return append(segments, seg)
}

// toTurns converts speaker-labelled utterances into diarization turns
func toTurns(t aai.Transcript) []entities.SpeakerTurn {
	turns := make([]entities.SpeakerTurn, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		start, end := msToSeconds(u.Start), msToSeconds(u.End)
		if end <= start {
			continue
		}
		turns = append(turns, entities.SpeakerTurn{Start: start, End: end, Label: speakerLabel(u.Speaker)})
	}
	return turns
}

func toTranscription(t aai.Transcript, model string) *entities.Transcription {
	segments := toSegments(t)
	duration := entities.LastSegmentEnd(segments)
	if t.AudioDuration != nil && *t.AudioDuration > 0 {
		duration = *t.AudioDuration
	}
	return &entities.Transcription{
		Segments: segments,
		Language: string(t.LanguageCode),
		Duration: duration,
		Model:    model,
	}
}
