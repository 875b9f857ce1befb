package fusion

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// DiarizationBackend finds who spoke when in an audio file
type DiarizationBackend interface {
	Diarize(ctx context.Context, audioPath string, expectedSpeakers *int) ([]entities.SpeakerTurn, error)
}

// DurationProber reports the length of an audio file in seconds
type DurationProber interface {
	Duration(ctx context.Context, audioPath string) (float64, error)
}

// Engine assigns speakers to transcript segments
type Engine struct {
	backend DiarizationBackend
	prober  DurationProber
	logger  *zap.Logger
}

// NewEngine creates a fusion engine. Either collaborator may be nil: without a
// backend every call takes the fallback path, without a prober the fallback
// yields no turns.
func NewEngine(backend DiarizationBackend, prober DurationProber, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{backend: backend, prober: prober, logger: logger}
}

// Diarize returns speaker turns for the audio. Backend failures are logged and
// replaced by FallbackTurns over the probed duration; they never propagate.
// An empty result means "keep the existing labels".
func (e *Engine) Diarize(ctx context.Context, audioPath string, expectedSpeakers *int) []entities.SpeakerTurn {
	if e.backend != nil {
		turns, err := e.backend.Diarize(ctx, audioPath, expectedSpeakers)
		if err == nil {
			e.logger.Info("🗣️ Diarization complete",
				zap.String("audio_path", audioPath),
				zap.Int("turns", len(turns)),
			)
			return turns
		}
		e.logger.Warn("⚠️ Diarization backend failed, using fallback windows",
			zap.String("audio_path", audioPath),
			zap.Error(err),
		)
	}

	return e.fallback(ctx, audioPath)
}

func (e *Engine) fallback(ctx context.Context, audioPath string) []entities.SpeakerTurn {
	if e.prober == nil {
		e.logger.Warn("⚠️ No duration prober configured, leaving speaker labels as-is")
		return []entities.SpeakerTurn{}
	}

	duration, err := e.prober.Duration(ctx, audioPath)
	if err != nil {
		e.logger.Warn("⚠️ Could not determine audio duration, leaving speaker labels as-is",
			zap.String("audio_path", audioPath),
			zap.Error(err),
		)
		return []entities.SpeakerTurn{}
	}

	turns := FallbackTurns(duration)
	e.logger.Info("🔁 Fallback diarization",
		zap.Float64("duration", duration),
		zap.Int("turns", len(turns)),
	)
	return turns
}

// Fuse diarizes the audio and applies the turns to segments. It never fails.
func (e *Engine) Fuse(ctx context.Context, segments []entities.TranscriptSegment, audioPath string, expectedSpeakers *int) []entities.TranscriptSegment {
	return Apply(segments, e.Diarize(ctx, audioPath, expectedSpeakers))
}
