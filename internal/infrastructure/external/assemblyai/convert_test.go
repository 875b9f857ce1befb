package assemblyai

import (
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

func ms(v int64) *int64 { return &v }
func s(v string) *string { return &v }
func f(v float64) *float64 { return &v }

func TestToSegmentsAndTurns(t *testing.T) {
	tr := aai.Transcript{
		Utterances: []aai.TranscriptUtterance{
			{Start: ms(0), End: ms(4200), Text: s(" Hello team. "), Speaker: s("A"), Confidence: f(0.91)},
			{Start: ms(4200), End: ms(9000), Text: s("   "), Speaker: s("B")},
			{Start: ms(9000), End: ms(12500), Text: s("Thanks."), Speaker: s("B"), Confidence: f(1.4)},
		},
		AudioDuration: f(13),
		LanguageCode:  aai.TranscriptLanguageCode("en"),
	}

	segments := toSegments(tr)
	if len(segments) != 2 {
		t.Fatalf("expected blank utterance skipped, got %d segments", len(segments))
	}
	if segments[0].Text != "Hello team." || segments[0].End != 4.2 || segments[0].Confidence != 0.91 {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
	if segments[0].Speaker != "Speaker 1" {
		t.Fatalf("segments must carry the default speaker until fusion, got %q", segments[0].Speaker)
	}
	if segments[1].Confidence != 1 {
		t.Fatalf("expected clamped confidence, got %v", segments[1].Confidence)
	}

	turns := toTurns(tr)
	if len(turns) != 3 || turns[0].Label != "Speaker A" || turns[2].Label != "Speaker B" {
		t.Fatalf("unexpected turns %+v", turns)
	}

	result := toTranscription(tr, modelName)
	if result.Duration != 13 || result.Language != "en" || result.Model != "assemblyai" {
		t.Fatalf("unexpected transcription %+v", result)
	}
}

func TestToSegments_WordsFallback(t *testing.T) {
	tr := aai.Transcript{
		Text: s("single block of text"),
		Words: []aai.TranscriptWord{
			{Start: ms(500), End: ms(900), Text: s("single")},
			{Start: ms(2000), End: ms(3100), Text: s("text")},
		},
	}
	segments := toSegments(tr)
	if len(segments) != 1 || segments[0].Start != 0.5 || segments[0].End != 3.1 {
		t.Fatalf("unexpected fallback segments %+v", segments)
	}
	if got := toTranscription(tr, modelName).Duration; got != 3.1 {
		t.Fatalf("expected duration from last segment, got %v", got)
	}
}

func TestSpeakerLabel(t *testing.T) {
	if got := speakerLabel(nil); got != "Speaker 1" {
		t.Fatalf("expected default label, got %q", got)
	}
	if got := speakerLabel(s("C")); got != "Speaker C" {
		t.Fatalf("unexpected label %q", got)
	}
}
