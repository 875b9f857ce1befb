package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

// clearEnv unsets variables the host may carry so defaults apply; t.Setenv restores them
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "DB_HOST",
		"LLM_PROVIDER", "LLM_TIMEOUT", "OPENAI_API_KEY", "GROQ_API_KEY", "ANTHROPIC_API_KEY",
		"ASSEMBLYAI_API_KEY", "SPEECH_SERVICE_URL", "TRANSCRIPTION_PROVIDER", "DIARIZATION_PROVIDER",
		"MAX_FILE_SIZE_MB", "SUPPORTED_FORMATS", "AUDIO_RETENTION_DAYS", "PRIVACY_MODE",
		"AUTH_ENABLED", "JWT_ACCESS_SECRET",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Pipeline.MaxFileSizeMB != 500 || cfg.MaxFileSizeBytes() != 500*1024*1024 {
		t.Errorf("unexpected file size limit %d", cfg.Pipeline.MaxFileSizeMB)
	}
	want := []string{".mp3", ".wav", ".m4a", ".flac", ".ogg"}
	if !reflect.DeepEqual(cfg.Pipeline.SupportedFormats, want) {
		t.Errorf("unexpected formats %v", cfg.Pipeline.SupportedFormats)
	}
	if cfg.Pipeline.AudioRetentionDays != 7 || !cfg.Pipeline.PrivacyMode {
		t.Errorf("unexpected privacy defaults %+v", cfg.Pipeline)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("unexpected LLM timeout %v", cfg.LLM.Timeout)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LLM_PROVIDER", " Anthropic ")
	t.Setenv("SUPPORTED_FORMATS", "MP3, wav")
	t.Setenv("PRIVACY_MODE", "false")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected DB host override, got %s", cfg.Database.Host)
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("expected provider normalized, got %q", cfg.LLM.Provider)
	}
	if !reflect.DeepEqual(cfg.Pipeline.SupportedFormats, []string{".mp3", ".wav"}) {
		t.Errorf("unexpected formats %v", cfg.Pipeline.SupportedFormats)
	}
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected missing ANTHROPIC_API_KEY to fail validation")
	}
	cfg.LLM.AnthropicAPIKey = "sk-ant"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate_PrivacyModeSkipsKeys(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	cfg.Pipeline.PrivacyMode = true
	cfg.LLM.OpenAIAPIKey = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected privacy mode to tolerate missing keys: %v", err)
	}

	cfg.LLM.Provider = "gemini"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported provider error")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}}
	want := "host=h port=1 user=u password=p dbname=n sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestValidate_SpeechBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSCRIPTION_PROVIDER", " Local ")
	t.Setenv("DIARIZATION_PROVIDER", "none")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Pipeline.TranscriptionProvider != BackendLocal {
		t.Fatalf("expected provider normalized, got %q", cfg.Pipeline.TranscriptionProvider)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing SPEECH_SERVICE_URL to fail validation")
	}
	cfg.Speech.URL = "http://speech:9000"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if cfg.UsesAssemblyAI() {
		t.Errorf("local transcription with no diarization should not use AssemblyAI")
	}

	cfg.Pipeline.DiarizationProvider = "pyannote"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported diarization provider error")
	}
}
