package entities

import (
	"fmt"
	"strings"
)

// DefaultSpeaker is the label every segment carries until fusion assigns a better one
const DefaultSpeaker = "Speaker 1"

// TranscriptSegment is one timed span of recognized speech
type TranscriptSegment struct {
	Start      float64 `json:"start" yaml:"start"`
	End        float64 `json:"end" yaml:"end"`
	Text       string  `json:"text" yaml:"text"`
	Speaker    string  `json:"speaker" yaml:"speaker"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// NewTranscriptSegment creates a segment with trimmed text and default speaker/confidence.
// Blank text and inverted ranges are rejected.
func NewTranscriptSegment(start, end float64, text string) (TranscriptSegment, error) {
	seg := TranscriptSegment{
		Start:      start,
		End:        end,
		Text:       strings.TrimSpace(text),
		Speaker:    DefaultSpeaker,
		Confidence: 1.0,
	}
	if err := seg.Validate(); err != nil {
		return TranscriptSegment{}, err
	}
	return seg, nil
}

// Duration returns End - Start in seconds
func (s TranscriptSegment) Duration() float64 {
	return s.End - s.Start
}

// Validate checks the segment invariants
func (s TranscriptSegment) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return ErrEmptySegmentText
	}
	if s.End < s.Start {
		return fmt.Errorf("%w: start=%.3f end=%.3f", ErrInvalidSegmentRange, s.Start, s.End)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("%w: confidence %.3f outside [0,1]", ErrInvalidSegmentRange, s.Confidence)
	}
	return nil
}

// WithConfidence returns a copy of s with confidence clamped into [0,1]
func (s TranscriptSegment) WithConfidence(c float64) TranscriptSegment {
	s.Confidence = clamp01(c)
	return s
}

// SpeakerTurn is a diarization result: who was talking between Start and End
type SpeakerTurn struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
}

// EstimateConfidence scores a recognized span when the recognizer reports no confidence.
// Very short text, very short spans, bracketed annotations and filler words all lower the score.
func EstimateConfidence(text string, duration float64) float64 {
	text = strings.TrimSpace(text)
	if len(text) < 5 {
		return 0.6
	}
	if duration < 0.5 {
		return 0.7
	}
	if strings.ContainsAny(text, "[]") {
		return 0.5
	}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		switch strings.Trim(w, ".,!?;:") {
		case "um", "uh", "er", "ah":
			return 0.8
		}
	}
	return 0.95
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
