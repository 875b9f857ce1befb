package entities

// Transcription is what a speech-to-text backend returns for one audio file
type Transcription struct {
	Segments []TranscriptSegment
	Language string
	// Duration in seconds; backends that do not report it use the last segment end
	Duration float64
	Model    string
}

// LastSegmentEnd returns the end of the final segment, or 0 for an empty transcript
func LastSegmentEnd(segments []TranscriptSegment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}
