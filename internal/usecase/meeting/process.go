package meeting

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
)

// ProcessInput represents input for processing a recorded meeting
type ProcessInput struct {
	Title            string
	Date             time.Time
	Participants     []string
	Agenda           *string
	AudioPath        string
	ExpectedSpeakers *int
	// Language overrides the configured transcription language
	Language string
}

// checkAudio rejects missing, unsupported or oversized audio before any backend runs
func (s *MeetingService) checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", entities.ErrAudioNotFound, path)
	}
	if len(s.opts.SupportedFormats) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		supported := false
		for _, f := range s.opts.SupportedFormats {
			if f == ext {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %q", entities.ErrUnsupportedAudio, ext)
		}
	}
	if s.opts.MaxFileSizeBytes > 0 && info.Size() > s.opts.MaxFileSizeBytes {
		return fmt.Errorf("%w: %d bytes", entities.ErrAudioTooLarge, info.Size())
	}
	return nil
}

func audioObjectKey(id uuid.UUID, path string) string {
	return fmt.Sprintf("audio/%s%s", id, strings.ToLower(filepath.Ext(path)))
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Process runs transcription, speaker fusion and minutes extraction, then stores the meeting
func (s *MeetingService) Process(ctx context.Context, input ProcessInput) (*entities.Meeting, error) {
	meeting, err := entities.NewMeeting(input.Title, input.Date, input.Participants, input.Agenda)
	if err != nil {
		return nil, err
	}
	if err := s.checkAudio(input.AudioPath); err != nil {
		return nil, err
	}

	lockKey := "audio:" + input.AudioPath
	if abs, err := filepath.Abs(input.AudioPath); err == nil {
		lockKey = "audio:" + abs
	}
	unlock, err := s.lock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ctx, cancel := jobcontext.JobBegin(ctx, meeting.ID, jobcontext.StageTranscribe, s.opts.ProcessingTimeout)
	defer cancel()

	language := input.Language
	if language == "" {
		language = s.opts.Language
	}

	audioPath := s.preprocessAudio(ctx, meeting, input.AudioPath)

	s.logger.Info("🎙️ Processing meeting",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("title", meeting.Title),
		zap.String("audio_path", audioPath),
		zap.String("language", language),
	)
	started := time.Now()

	var transcription *entities.Transcription
	err = jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		t, err := s.transcriber.Transcribe(ctx, audioPath, language, input.ExpectedSpeakers)
		if err != nil {
			return err
		}
		transcription = t
		return nil
	})
	if err != nil {
		s.logger.Error("❌ Transcription failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		if errors.Is(err, entities.ErrAudioNotFound) {
			return nil, err
		}
		return nil, apperrors.ErrAITranscriptionFailed(err)
	}

	ctx = jobcontext.SetStage(ctx, jobcontext.StageDiarize)
	segments := transcription.Segments
	if s.fuser != nil {
		segments = s.fuser.Fuse(ctx, segments, audioPath, input.ExpectedSpeakers)
	}

	ctx = jobcontext.SetStage(ctx, jobcontext.StageSummarize)
	minutes, err := s.summarizer.Summarize(ctx, segments, meeting.AgendaText())
	if err != nil {
		s.logger.Error("❌ Minutes failed structural validation",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	path := input.AudioPath
	meeting.Transcript = segments
	meeting.Minutes = minutes
	meeting.Language = transcription.Language
	meeting.DurationSeconds = transcription.Duration
	meeting.TranscriptionModel = transcription.Model
	meeting.AudioPath = &path

	ctx = jobcontext.SetStage(ctx, jobcontext.StageArchive)
	s.archiveAudio(ctx, meeting)

	if err := s.repo.Create(ctx, meeting); err != nil {
		if meeting.AudioObjectKey != nil {
			if rmErr := s.store.RemoveFile(context.Background(), *meeting.AudioObjectKey); rmErr != nil {
				s.logger.Warn("⚠️ Failed to remove archived audio",
					zap.String("meeting_id", meeting.ID.String()),
					zap.String("object", *meeting.AudioObjectKey),
					zap.Error(rmErr),
				)
			}
		}
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	s.logger.Info("✅ Meeting processed",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("segments", len(meeting.Transcript)),
		zap.Int("speakers", len(meeting.Speakers())),
		zap.Int("action_items", len(minutes.ActionItems)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return meeting, nil
}

// preprocessAudio runs the optional hook; a failing hook falls back to the original file
func (s *MeetingService) preprocessAudio(ctx context.Context, meeting *entities.Meeting, path string) string {
	if s.preprocess == nil {
		return path
	}
	out, err := s.preprocess.Preprocess(ctx, path)
	if err != nil || out == "" {
		s.logger.Warn("⚠️ Audio preprocessing failed, using the original file",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
		return path
	}
	return out
}

// archiveAudio copies the audio to object storage; failures only cost the remote copy
func (s *MeetingService) archiveAudio(ctx context.Context, meeting *entities.Meeting) {
	if s.store == nil || meeting.AudioPath == nil {
		return
	}
	key := audioObjectKey(meeting.ID, *meeting.AudioPath)
	if err := s.store.UploadLocalFile(ctx, key, *meeting.AudioPath, contentTypeFor(*meeting.AudioPath)); err != nil {
		s.logger.Warn("⚠️ Failed to archive audio",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("object", key),
			zap.Error(err),
		)
		return
	}
	meeting.AudioObjectKey = &key
}

// Regenerate re-runs minutes extraction over the stored transcript using the agenda as context
func (s *MeetingService) Regenerate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	unlock, err := s.lock(ctx, "meeting:"+id.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := jobcontext.JobBegin(ctx, id, jobcontext.StageSummarize, s.opts.ProcessingTimeout)
	defer cancel()

	minutes, err := s.summarizer.Summarize(ctx, meeting.Transcript, meeting.AgendaText())
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMinutes(ctx, id, minutes); err != nil {
		return nil, fmt.Errorf("failed to update minutes: %w", err)
	}
	meeting.Minutes = minutes

	s.logger.Info("🔁 Minutes regenerated",
		zap.String("meeting_id", id.String()),
		zap.Bool("empty", minutes.IsEmpty()),
	)
	return meeting, nil
}
