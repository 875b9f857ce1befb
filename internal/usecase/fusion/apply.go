package fusion

import (
	"math"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Apply labels each segment with the speaker turn it overlaps the most.
// The input is never modified; a new slice is returned. With no turns the
// segments come back unchanged. Equal overlaps keep the earlier turn and a
// segment that overlaps nothing gets entities.DefaultSpeaker.
func Apply(segments []entities.TranscriptSegment, turns []entities.SpeakerTurn) []entities.TranscriptSegment {
	out := make([]entities.TranscriptSegment, len(segments))
	copy(out, segments)
	if len(turns) == 0 {
		return out
	}

	for i := range out {
		out[i].Speaker = bestSpeaker(out[i], turns)
	}
	return out
}

func bestSpeaker(seg entities.TranscriptSegment, turns []entities.SpeakerTurn) string {
	best := ""
	maxOverlap := 0.0
	for _, turn := range turns {
		// strict > keeps the first of equally overlapping turns
		if o := Overlap(seg.Start, seg.End, turn.Start, turn.End); o > maxOverlap {
			maxOverlap = o
			best = turn.Label
		}
	}
	if maxOverlap == 0 {
		return entities.DefaultSpeaker
	}
	return best
}

// Overlap is the length of the intersection of [aStart,aEnd] and [bStart,bEnd], or 0
func Overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	return math.Max(0, math.Min(aEnd, bEnd)-math.Max(aStart, bStart))
}
