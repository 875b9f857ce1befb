package meeting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
)

// Get retrieves a meeting by ID
func (s *MeetingService) Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// List retrieves meetings with filters
func (s *MeetingService) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, total, nil
}

// Statistics summarizes stored meetings
func (s *MeetingService) Statistics(ctx context.Context) (*repositories.MeetingStatistics, error) {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

// Delete removes the meeting row, then its archived and local audio
func (s *MeetingService) Delete(ctx context.Context, id uuid.UUID) error {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	s.removeAudio(ctx, meeting)

	s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	return nil
}

// removeAudio drops the object and the local file, logging failures
func (s *MeetingService) removeAudio(ctx context.Context, meeting *entities.Meeting) {
	if meeting.AudioObjectKey != nil && s.store != nil {
		if err := s.store.RemoveFile(ctx, *meeting.AudioObjectKey); err != nil {
			s.logger.Warn("⚠️ Failed to remove archived audio",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("object", *meeting.AudioObjectKey),
				zap.Error(err),
			)
		}
	}
	if meeting.AudioPath != nil && s.ownsAudio(*meeting.AudioPath) {
		if err := os.Remove(*meeting.AudioPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("⚠️ Failed to remove local audio",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("path", *meeting.AudioPath),
				zap.Error(err),
			)
		}
	}
}

// ownsAudio reports whether path sits inside the upload directory
func (s *MeetingService) ownsAudio(path string) bool {
	if path == "" || s.opts.UploadDir == "" {
		return false
	}
	dir, err := filepath.Abs(s.opts.UploadDir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RenameSpeakers applies old->new speaker labels and returns the number of segments changed
func (s *MeetingService) RenameSpeakers(ctx context.Context, id uuid.UUID, mapping map[string]string) (*entities.Meeting, int, error) {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	changed := meeting.RenameSpeakers(mapping)
	if changed == 0 {
		return meeting, 0, nil
	}
	if err := s.repo.UpdateTranscript(ctx, id, meeting.Transcript); err != nil {
		return nil, 0, fmt.Errorf("failed to update transcript: %w", err)
	}
	return meeting, changed, nil
}

// UpdateMinutes normalizes and validates edited minutes before saving them
func (s *MeetingService) UpdateMinutes(ctx context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) (*entities.Meeting, error) {
	if minutes == nil {
		return nil, apperrors.ErrInvalidArgument("minutes are required")
	}
	minutes = minutes.Clone()
	minutes.Normalize()
	if err := minutes.Validate(); err != nil {
		return nil, err
	}

	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMinutes(ctx, id, minutes); err != nil {
		return nil, fmt.Errorf("failed to update minutes: %w", err)
	}
	meeting.Minutes = minutes
	return meeting, nil
}

// ExportInput selects the export format and whether to publish the result
type ExportInput struct {
	Options export.Options
	// Publish stores the document in object storage and returns a presigned URL
	Publish bool
}

// ExportResult is a rendered document and, when published, where to fetch it
type ExportResult struct {
	Document  *export.Document
	ObjectKey string
	URL       string
}

// Export renders a meeting in the requested format
func (s *MeetingService) Export(ctx context.Context, id uuid.UUID, input ExportInput) (*ExportResult, error) {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.exporter.Export(meeting, input.Options)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return nil, apperrors.ErrExportUnsupportedFormat(input.Options.Format)
		}
		return nil, apperrors.ErrExportFailed(input.Options.Format, err)
	}
	result := &ExportResult{Document: doc}
	if !input.Publish {
		return result, nil
	}
	if s.store == nil {
		return nil, apperrors.ErrStorageFailed("publish export", errors.New("object storage is not configured"))
	}

	key := fmt.Sprintf("exports/%s/%s", id, doc.Filename)
	if err := s.store.UploadFile(ctx, key, bytes.NewReader(doc.Data), int64(len(doc.Data)), doc.ContentType); err != nil {
		return nil, apperrors.ErrStorageFailed("upload export", err)
	}
	url, err := s.store.GetFileURL(ctx, key, s.opts.PresignExpiry)
	if err != nil {
		return nil, apperrors.ErrStorageFailed("presign export", err)
	}
	result.ObjectKey = key
	result.URL = url

	s.logger.Info("📤 Export published",
		zap.String("meeting_id", id.String()),
		zap.String("object", key),
	)
	return result, nil
}

// CleanupExpiredAudio removes audio of meetings older than retentionDays; zero or less keeps everything
func (s *MeetingService) CleanupExpiredAudio(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	meetings, err := s.repo.FindAudioOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired audio: %w", err)
	}

	cleaned := 0
	for _, m := range meetings {
		s.removeAudio(ctx, m)
		if err := s.repo.ClearAudio(ctx, m.ID); err != nil {
			s.logger.Warn("⚠️ Failed to clear audio reference",
				zap.String("meeting_id", m.ID.String()),
				zap.Error(err),
			)
			continue
		}
		cleaned++
	}
	if cleaned > 0 {
		s.logger.Info("🧹 Expired audio removed",
			zap.Int("meetings", cleaned),
			zap.Time("cutoff", cutoff),
		)
	}
	return cleaned, nil
}
