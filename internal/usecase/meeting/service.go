package meeting

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Service defines the interface for the meeting use case
type Service interface {
	// Process transcribes, fuses and summarizes an audio file into a stored meeting
	Process(ctx context.Context, input ProcessInput) (*entities.Meeting, error)

	// Get retrieves a meeting by ID
	Get(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List retrieves meetings with filters
	List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)

	// Statistics summarizes stored meetings
	Statistics(ctx context.Context) (*repositories.MeetingStatistics, error)

	// Delete removes a meeting together with its audio
	Delete(ctx context.Context, id uuid.UUID) error

	// RenameSpeakers relabels transcript speakers
	RenameSpeakers(ctx context.Context, id uuid.UUID, mapping map[string]string) (*entities.Meeting, int, error)

	// UpdateMinutes replaces the minutes after an edit
	UpdateMinutes(ctx context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) (*entities.Meeting, error)

	// Regenerate re-runs extraction over the stored transcript
	Regenerate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Export renders a meeting, optionally publishing it to object storage
	Export(ctx context.Context, id uuid.UUID, input ExportInput) (*ExportResult, error)

	// CleanupExpiredAudio drops audio older than the retention window
	CleanupExpiredAudio(ctx context.Context, retentionDays int) (int, error)
}

// Transcriber turns an audio file into timed segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string, expectedSpeakers *int) (*entities.Transcription, error)
}

// Preprocessor is the hook point for audio clean-up before transcription.
// It returns the file to transcribe, which may be the input path itself.
type Preprocessor interface {
	Preprocess(ctx context.Context, audioPath string) (string, error)
}

// Fuser attributes speakers to transcript segments
type Fuser interface {
	Fuse(ctx context.Context, segments []entities.TranscriptSegment, audioPath string, expectedSpeakers *int) []entities.TranscriptSegment
}

// Summarizer extracts structured minutes from a transcript
type Summarizer interface {
	Summarize(ctx context.Context, segments []entities.TranscriptSegment, meetingContext string) (*entities.MeetingMinutes, error)
}

// Locker guards a meeting against concurrent processing. Unlock only
// releases the lock while it still carries the token TryLock handed out.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// ObjectStore keeps audio and exported documents
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	UploadLocalFile(ctx context.Context, objectName, path, contentType string) error
	RemoveFile(ctx context.Context, objectName string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Options tunes processing limits
type Options struct {
	Language          string
	SupportedFormats  []string
	MaxFileSizeBytes  int64
	ProcessingTimeout time.Duration
	LockTTL           time.Duration
	PresignExpiry     time.Duration
	// UploadDir holds the recordings the service owns. Local audio elsewhere
	// belongs to the caller and is never removed.
	UploadDir string
}

// OptionsFromConfig maps the pipeline configuration to service options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Language:          cfg.Pipeline.Language,
		SupportedFormats:  cfg.Pipeline.SupportedFormats,
		MaxFileSizeBytes:  cfg.MaxFileSizeBytes(),
		ProcessingTimeout: cfg.Pipeline.ProcessingTimeout,
		LockTTL:           cfg.Pipeline.ProcessingTimeout,
		PresignExpiry:     cfg.Storage.PresignExpiry,
		UploadDir:         cfg.Pipeline.UploadDir,
	}
}

// Dependencies wires the collaborators of the meeting service
type Dependencies struct {
	Repo        repositories.MeetingRepository
	Transcriber Transcriber
	Fuser       Fuser
	Summarizer  Summarizer
	Exporter    *export.Exporter
	Locker      Locker
	// Store is optional; without it audio stays on local disk only
	Store ObjectStore
	// Preprocessor is optional
	Preprocessor Preprocessor
	Logger       *zap.Logger
}

// MeetingService handles meeting business logic
type MeetingService struct {
	repo        repositories.MeetingRepository
	transcriber Transcriber
	fuser       Fuser
	summarizer  Summarizer
	exporter    *export.Exporter
	locker      Locker
	store       ObjectStore
	preprocess  Preprocessor
	opts        Options
	logger      *zap.Logger
	now         func() time.Time
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// NewMeetingService creates a new meeting service
func NewMeetingService(deps Dependencies, opts Options) *MeetingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exporter := deps.Exporter
	if exporter == nil {
		exporter = export.NewExporter()
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Minute
	}
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = time.Hour
	}
	return &MeetingService{
		repo:        deps.Repo,
		transcriber: deps.Transcriber,
		fuser:       deps.Fuser,
		summarizer:  deps.Summarizer,
		exporter:    exporter,
		locker:      deps.Locker,
		store:       deps.Store,
		preprocess:  deps.Preprocessor,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

// lock takes the named processing lock; the returned func releases it
func (s *MeetingService) lock(ctx context.Context, key string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	token, ok, err := s.locker.TryLock(ctx, key, s.opts.LockTTL)
	if err != nil {
		// A broken lock store must not block processing
		s.logger.Warn("⚠️ Processing lock unavailable", zap.String("key", key), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, entities.ErrMeetingBusy
	}
	return func() {
		if err := s.locker.Unlock(context.Background(), key, token); err != nil {
			s.logger.Warn("⚠️ Failed to release processing lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
