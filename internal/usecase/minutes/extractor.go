package minutes

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// TextGenerator is a single-turn completion capability
type TextGenerator interface {
	Complete(ctx context.Context, systemContract, userText string) (string, error)
}

// Extractor turns a speaker-labelled transcript into meeting minutes
type Extractor struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewExtractor creates an extractor. A nil generator makes every call return empty minutes.
func NewExtractor(generator TextGenerator, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{generator: generator, logger: logger}
}

// Summarize asks the generator for minutes and validates the result.
//
// Transport problems (no generator, backend error, unparseable output) are
// logged and yield empty minutes with a nil error. The only error returned is a
// *entities.StructuralError, when an action item lacks an owner or a task.
func (e *Extractor) Summarize(ctx context.Context, segments []entities.TranscriptSegment, meetingContext string) (*entities.MeetingMinutes, error) {
	if e.generator == nil {
		e.logger.Warn("⚠️ No text generator configured, returning empty minutes")
		return entities.EmptyMinutes(), nil
	}

	prompt := BuildUserPrompt(FormatTranscript(segments), meetingContext)

	started := time.Now()
	response, err := e.generator.Complete(ctx, SystemContract, prompt)
	if err != nil {
		e.logger.Error("❌ Summarization backend failed",
			zap.Int("segments", len(segments)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return entities.EmptyMinutes(), nil
	}

	result := Parse(response)
	if !result.OK() {
		e.logger.Error("❌ Failed to parse minutes response",
			zap.Int("response_length", len(response)),
			zap.Error(result.Err()),
		)
		return entities.EmptyMinutes(), nil
	}

	m := result.Minutes
	if dropped := m.Normalize(); dropped > 0 {
		e.logger.Warn("⚠️ Summary too long, truncating",
			zap.Int("dropped", dropped),
			zap.Int("max", entities.MaxSummaryItems),
		)
	}
	if err := m.Validate(); err != nil {
		e.logger.Error("❌ Minutes violate the output contract",
			zap.String("parse_stage", string(result.Stage)),
			zap.Error(err),
		)
		return nil, err
	}

	e.logger.Info("✅ Meeting minutes generated",
		zap.String("parse_stage", string(result.Stage)),
		zap.Int("summary", len(m.Summary)),
		zap.Int("decisions", len(m.Decisions)),
		zap.Int("action_items", len(m.ActionItems)),
		zap.Int("risks", len(m.Risks)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return m, nil
}
