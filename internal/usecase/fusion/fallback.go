package fusion

import (
	"math"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// FallbackWindow is the fixed turn length used when no diarization backend answers
const FallbackWindow = 30.0

// fallbackLabels alternate window by window, starting with the first
var fallbackLabels = [2]string{"Speaker 1", "Speaker 2"}

// FallbackTurns partitions [0,duration] into back-to-back FallbackWindow turns that
// alternate between two speakers. The last turn ends exactly at duration.
// A non-positive or non-finite duration yields no turns.
func FallbackTurns(duration float64) []entities.SpeakerTurn {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return []entities.SpeakerTurn{}
	}

	n := int(math.Ceil(duration / FallbackWindow))
	turns := make([]entities.SpeakerTurn, 0, n)
	for i := 0; i < n; i++ {
		start := float64(i) * FallbackWindow
		end := math.Min(start+FallbackWindow, duration)
		turns = append(turns, entities.SpeakerTurn{
			Start: start,
			End:   end,
			Label: fallbackLabels[i%len(fallbackLabels)],
		})
	}
	return turns
}
