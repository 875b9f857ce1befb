package assemblyai

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

const modelName = "assemblyai"

// maxCachedTurns bounds the turns held for paths Diarize has not asked for yet
const maxCachedTurns = 16

// Client transcribes and diarizes audio with AssemblyAI. One speaker-labelled
// request serves both steps: when diarization also runs on AssemblyAI the
// turns from the last transcription of a path are kept until Diarize picks
// them up.
type Client struct {
	sdk        *aai.Client
	logger     *zap.Logger
	cacheTurns bool

	mu    sync.Mutex
	turns map[string][]entities.SpeakerTurn
	order []string
}

// NewClient creates an AssemblyAI client. cacheTurns should be set only when
// Diarize will be called after Transcribe for the same audio.
func NewClient(cfg *config.AssemblyAIConfig, logger *zap.Logger, cacheTurns bool) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		sdk:        aai.NewClientWithOptions(opts...),
		logger:     logger,
		cacheTurns: cacheTurns,
		turns:      make(map[string][]entities.SpeakerTurn),
	}
}

// CachedTurns reports how many transcriptions still hold unclaimed turns
func (c *Client) CachedTurns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

func (c *Client) keepTurns(audioPath string, turns []entities.SpeakerTurn) {
	if !c.cacheTurns {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.turns[audioPath]; !ok {
		c.order = append(c.order, audioPath)
	}
	c.turns[audioPath] = turns
	for len(c.order) > maxCachedTurns {
		delete(c.turns, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *Client) takeTurns(audioPath string) ([]entities.SpeakerTurn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	turns, ok := c.turns[audioPath]
	if !ok {
		return nil, false
	}
	delete(c.turns, audioPath)
	for i, p := range c.order {
		if p == audioPath {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return turns, true
}

// Transcribe uploads the audio and waits for the speaker-labelled transcript
func (c *Client) Transcribe(ctx context.Context, audioPath, language string, expectedSpeakers *int) (*entities.Transcription, error) {
	transcript, err := c.run(ctx, audioPath, language, expectedSpeakers)
	if err != nil {
		return nil, err
	}

	c.keepTurns(audioPath, toTurns(transcript))

	result := toTranscription(transcript, modelName)
	c.logger.Info("✅ AssemblyAI transcription completed",
		zap.String("transcript_id", str(transcript.ID)),
		zap.Int("segments", len(result.Segments)),
		zap.Float64("duration", result.Duration),
	)
	return result, nil
}

// Diarize returns the speaker turns of the audio, reusing a prior transcription when possible
func (c *Client) Diarize(ctx context.Context, audioPath string, expectedSpeakers *int) ([]entities.SpeakerTurn, error) {
	if turns, ok := c.takeTurns(audioPath); ok {
		return turns, nil
	}

	transcript, err := c.run(ctx, audioPath, "", expectedSpeakers)
	if err != nil {
		return nil, err
	}
	return toTurns(transcript), nil
}

func (c *Client) run(ctx context.Context, audioPath, language string, expectedSpeakers *int) (aai.Transcript, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(language)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}
	if expectedSpeakers != nil && *expectedSpeakers > 0 {
		params.SpeakersExpected = aai.Int64(int64(*expectedSpeakers))
	}

	c.logger.Info("🎙️ Starting transcription",
		zap.String("audio_path", audioPath),
		zap.String("language", language),
	)

	var transcript aai.Transcript
	submit := func() error {
		f, err := os.Open(audioPath)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", entities.ErrAudioNotFound, err))
		}
		defer f.Close()

		transcript, err = c.sdk.Transcripts.TranscribeFromReader(ctx, f, params)
		if err != nil {
			c.logger.Warn("⚠️ AssemblyAI request failed, retrying", zap.Error(err))
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	bo.MaxInterval = 10 * time.Second

	if err := backoff.Retry(submit, backoff.WithContext(bo, ctx)); err != nil {
		c.logger.Error("❌ AssemblyAI transcription failed", zap.String("audio_path", audioPath), zap.Error(err))
		return aai.Transcript{}, err
	}

	switch transcript.Status {
	case aai.TranscriptStatusCompleted:
		return transcript, nil
	case aai.TranscriptStatusError:
		return aai.Transcript{}, fmt.Errorf("assemblyai error: %s", str(transcript.Error))
	default:
		return aai.Transcript{}, fmt.Errorf("assemblyai transcript %s ended in status %s", str(transcript.ID), transcript.Status)
	}
}
