package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LLM providers understood by the text generation factory
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderLocal     = "local"
)

// Speech backends for transcription and diarization
const (
	BackendAssemblyAI = "assemblyai"
	BackendLocal      = "local"
	// BackendNone disables diarization so fusion falls back to alternating speakers
	BackendNone = "none"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Assembly AssemblyAIConfig
	Speech   SpeechServiceConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_minutes"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	Migrations  string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Enabled      bool          `envconfig:"AUTH_ENABLED" default:"true"`
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"meeting-minutes"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"STORAGE_ENABLED" default:"true"`
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"meeting-minutes"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	PresignExpiry   time.Duration `envconfig:"STORAGE_PRESIGN_EXPIRY" default:"1h"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL string `envconfig:"ASSEMBLYAI_BASE_URL"`
}

// SpeechServiceConfig points at a self-hosted transcription/diarization service
type SpeechServiceConfig struct {
	URL     string        `envconfig:"SPEECH_SERVICE_URL"`
	Model   string        `envconfig:"WHISPER_MODEL" default:"base"`
	Timeout time.Duration `envconfig:"SPEECH_SERVICE_TIMEOUT" default:"10m"`
	// Optional OAuth2 client credentials for services behind an identity provider
	TokenURL     string   `envconfig:"SPEECH_OAUTH_TOKEN_URL"`
	ClientID     string   `envconfig:"SPEECH_OAUTH_CLIENT_ID"`
	ClientSecret string   `envconfig:"SPEECH_OAUTH_CLIENT_SECRET"`
	Scopes       []string `envconfig:"SPEECH_OAUTH_SCOPES"`
}

// LLMConfig holds text generation configuration
type LLMConfig struct {
	Provider         string        `envconfig:"LLM_PROVIDER" default:"openai"`
	Model            string        `envconfig:"LLM_MODEL" default:"gpt-4-turbo-preview"`
	Temperature      float64       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	MaxTokens        int           `envconfig:"LLM_MAX_TOKENS" default:"4096"`
	Timeout          time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	OpenAIAPIKey     string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	GroqAPIKey       string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL      string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com/openai/v1"`
	AnthropicAPIKey  string        `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string        `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	LocalBaseURL     string        `envconfig:"LOCAL_LLM_URL" default:"http://localhost:11434/v1"`
}

// PipelineConfig holds meeting processing configuration
type PipelineConfig struct {
	TranscriptionProvider string        `envconfig:"TRANSCRIPTION_PROVIDER" default:"assemblyai"`
	DiarizationProvider   string        `envconfig:"DIARIZATION_PROVIDER" default:"assemblyai"`
	Language              string        `envconfig:"TRANSCRIPTION_LANGUAGE" default:"en"`
	MaxFileSizeMB         int64         `envconfig:"MAX_FILE_SIZE_MB" default:"500"`
	SupportedFormats      []string      `envconfig:"SUPPORTED_FORMATS" default:".mp3,.wav,.m4a,.flac,.ogg"`
	AudioRetentionDays    int           `envconfig:"AUDIO_RETENTION_DAYS" default:"7"`
	PrivacyMode           bool          `envconfig:"PRIVACY_MODE" default:"true"`
	ProcessingTimeout     time.Duration `envconfig:"PROCESSING_TIMEOUT" default:"30m"`
	UploadDir             string        `envconfig:"UPLOAD_DIR" default:"data/audio"`
	FFProbePath           string        `envconfig:"FFPROBE_PATH" default:"ffprobe"`
}

// Load loads configuration from the environment, reading .env first if present
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Redis,
		&config.JWT,
		&config.Storage,
		&config.Assembly,
		&config.Speech,
		&config.LLM,
		&config.Pipeline,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	config.LLM.Provider = strings.ToLower(strings.TrimSpace(config.LLM.Provider))
	config.Pipeline.TranscriptionProvider = strings.ToLower(strings.TrimSpace(config.Pipeline.TranscriptionProvider))
	config.Pipeline.DiarizationProvider = strings.ToLower(strings.TrimSpace(config.Pipeline.DiarizationProvider))
	for i, ext := range config.Pipeline.SupportedFormats {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		config.Pipeline.SupportedFormats[i] = ext
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGroq, ProviderAnthropic, ProviderLocal:
	default:
		return fmt.Errorf("LLM_PROVIDER %q is not supported", c.LLM.Provider)
	}

	// Cloud keys are only mandatory once privacy mode is off
	if !c.Pipeline.PrivacyMode {
		if c.LLM.Provider == ProviderOpenAI && c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
		if c.LLM.Provider == ProviderGroq && c.LLM.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required")
		}
		if c.LLM.Provider == ProviderAnthropic && c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	}

	switch c.Pipeline.TranscriptionProvider {
	case BackendAssemblyAI, BackendLocal:
	default:
		return fmt.Errorf("TRANSCRIPTION_PROVIDER %q is not supported", c.Pipeline.TranscriptionProvider)
	}
	switch c.Pipeline.DiarizationProvider {
	case BackendAssemblyAI, BackendLocal, BackendNone:
	default:
		return fmt.Errorf("DIARIZATION_PROVIDER %q is not supported", c.Pipeline.DiarizationProvider)
	}
	if c.UsesLocalSpeech() && c.Speech.URL == "" {
		return fmt.Errorf("SPEECH_SERVICE_URL is required for the local speech backend")
	}

	if c.Pipeline.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive")
	}
	if c.Server.Environment == "production" && c.JWT.Enabled &&
		c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be changed in production")
	}
	return nil
}

// IsCloudLLM reports whether the configured provider sends transcripts off-host
func (c *Config) IsCloudLLM() bool {
	return c.LLM.Provider != ProviderLocal
}

// UsesLocalSpeech reports whether either speech stage runs on the self-hosted service
func (c *Config) UsesLocalSpeech() bool {
	return c.Pipeline.TranscriptionProvider == BackendLocal || c.Pipeline.DiarizationProvider == BackendLocal
}

// UsesAssemblyAI reports whether audio is uploaded to AssemblyAI
func (c *Config) UsesAssemblyAI() bool {
	return c.Pipeline.TranscriptionProvider == BackendAssemblyAI || c.Pipeline.DiarizationProvider == BackendAssemblyAI
}

// MaxFileSizeBytes returns the upload limit in bytes
func (c *Config) MaxFileSizeBytes() int64 {
	return c.Pipeline.MaxFileSizeMB * 1024 * 1024
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
