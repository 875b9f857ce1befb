package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/media"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/speechd"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/fusion"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// App holds the wired use cases shared by the API server and the CLI
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *gorm.DB
	Meetings *meeting.MeetingService
	Tokens   *jwt.Manager
	Prober   *media.Prober
	Storage  *storage.MinIOClient

	closers []func() error
}

// NewLogger builds the zap logger for the configured environment
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Backends are the speech collaborators selected by configuration
type Backends struct {
	Transcriber meeting.Transcriber
	// Diarizer is nil when diarization is disabled
	Diarizer fusion.DiarizationBackend
}

// SelectBackends resolves TRANSCRIPTION_PROVIDER and DIARIZATION_PROVIDER.
// Both stages share one AssemblyAI client so a single upload serves both.
func SelectBackends(cfg *config.Config, logger *zap.Logger) (Backends, error) {
	var (
		b      Backends
		remote *assemblyai.Client
		local  *speechd.Client
	)
	if cfg.UsesAssemblyAI() {
		remote = assemblyai.NewClient(&cfg.Assembly, logger, cfg.Pipeline.DiarizationProvider == config.BackendAssemblyAI)
	}
	if cfg.UsesLocalSpeech() {
		local = speechd.NewClient(&cfg.Speech, logger)
	}

	switch cfg.Pipeline.TranscriptionProvider {
	case config.BackendAssemblyAI:
		b.Transcriber = remote
	case config.BackendLocal:
		b.Transcriber = local
	default:
		return b, fmt.Errorf("unknown transcription provider %q", cfg.Pipeline.TranscriptionProvider)
	}

	switch cfg.Pipeline.DiarizationProvider {
	case config.BackendAssemblyAI:
		b.Diarizer = remote
	case config.BackendLocal:
		b.Diarizer = local
	case config.BackendNone:
	default:
		return b, fmt.Errorf("unknown diarization provider %q", cfg.Pipeline.DiarizationProvider)
	}
	return b, nil
}

// New connects infrastructure and builds the meeting service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	if cfg.Pipeline.PrivacyMode && cfg.UsesAssemblyAI() {
		logger.Warn("⚠️ Privacy mode is on but AssemblyAI is configured, audio will leave this host")
	}

	backends, err := SelectBackends(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, func() error { return database.CloseDB(db) })

	locker := a.newLocker(ctx)

	var store meeting.ObjectStore
	if cfg.Storage.Enabled {
		logger.Info("🗄️ Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		client, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Warn("⚠️ Object storage unavailable, audio stays on local disk", zap.Error(err))
		} else {
			a.Storage = client
			store = client
		}
	}

	a.Prober = media.NewProber(cfg.Pipeline.FFProbePath)
	engine := fusion.NewEngine(backends.Diarizer, a.Prober, logger)

	// Keep the interface nil when no generator is configured
	var generator minutes.TextGenerator
	if g := ai.NewTextGenerator(cfg, logger); g != nil {
		generator = g
	}
	extractor := minutes.NewExtractor(generator, logger)

	a.Tokens = jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	a.Meetings = meeting.NewMeetingService(meeting.Dependencies{
		Repo:        repository.NewMeetingRepository(db),
		Transcriber: backends.Transcriber,
		Fuser:       engine,
		Summarizer:  extractor,
		Locker:      locker,
		Store:       store,
		Logger:      logger,
	}, meeting.OptionsFromConfig(cfg))

	logger.Info("✅ Meeting service initialized",
		zap.String("transcription", cfg.Pipeline.TranscriptionProvider),
		zap.String("diarization", cfg.Pipeline.DiarizationProvider),
		zap.String("llm", cfg.LLM.Provider),
	)
	return a, nil
}

// newLocker prefers Redis and falls back to an in-process lock table
func (a *App) newLocker(ctx context.Context) meeting.Locker {
	cfg, logger := a.Config, a.Logger
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		client, err := cache.NewRedisClient(ctx, cfg)
		if err == nil {
			a.closers = append(a.closers, client.Close)
			return cache.NewRedisLocker(client)
		}
		logger.Warn("⚠️ Redis unavailable, using in-memory processing locks", zap.Error(err))
	} else {
		logger.Info("🔒 Redis disabled, using in-memory processing locks")
	}

	store := cache.NewMemoryStore()
	a.closers = append(a.closers, func() error {
		store.Close()
		return nil
	})
	return cache.NewMemoryLocker(store)
}

// Close releases connections in reverse order of creation
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
