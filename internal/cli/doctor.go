package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/media"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-minutes/internal/output"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			cfg := deps.Config

			ok := checkLocal(f, cfg)
			if !offline {
				ok = checkServices(cmd.Context(), f, cfg) && ok
			}

			if ok {
				f.Success("\nAll prerequisites met. Ready to process meetings!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip database, Redis and object storage checks")

	return cmd
}

// checkLocal covers binaries, keys and directories
func checkLocal(f *output.Formatter, cfg *config.Config) bool {
	ok := true

	if err := media.NewProber(cfg.Pipeline.FFProbePath).Available(); err != nil {
		f.SetupCheck("ffprobe", false, err.Error())
		ok = false
	} else {
		f.SetupCheck("ffprobe", true, "installed")
	}

	if cfg.UsesAssemblyAI() {
		if cfg.Assembly.APIKey != "" {
			f.SetupCheck("AssemblyAI API key", true, "configured")
		} else {
			f.SetupCheck("AssemblyAI API key", false, "not set. Set ASSEMBLYAI_API_KEY")
			ok = false
		}
	}
	if cfg.UsesLocalSpeech() {
		f.SetupCheck("Speech service", cfg.Speech.URL != "", orDefault(cfg.Speech.URL, "not set. Set SPEECH_SERVICE_URL"))
		ok = ok && cfg.Speech.URL != ""
	}
	if cfg.Pipeline.DiarizationProvider == config.BackendNone {
		f.SetupCheck("Diarization", true, "disabled, speakers alternate every 30s")
	}

	if key, name := llmKey(cfg); name != "" {
		if key != "" {
			f.SetupCheck(name, true, "configured")
		} else {
			f.SetupCheck(name, false, "not set. Minutes will be empty")
			ok = false
		}
	} else {
		f.SetupCheck("Local LLM", true, cfg.LLM.LocalBaseURL)
	}
	if cfg.Pipeline.PrivacyMode && (cfg.IsCloudLLM() || cfg.UsesAssemblyAI()) {
		f.SetupCheck("Privacy mode", false, "on, but a cloud backend is configured")
	}

	if info, err := os.Stat(cfg.Pipeline.UploadDir); err == nil && info.IsDir() {
		f.SetupCheck("Upload directory", true, cfg.Pipeline.UploadDir)
	} else {
		f.SetupCheck("Upload directory", true, cfg.Pipeline.UploadDir+" (created on first upload)")
	}

	return ok
}

// checkServices connects to each configured service
func checkServices(ctx context.Context, f *output.Formatter, cfg *config.Config) bool {
	ok := true
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if db, err := database.NewPostgresDB(cfg); err != nil {
		f.SetupCheck("Database", false, err.Error())
		ok = false
	} else {
		f.SetupCheck("Database", true, fmt.Sprintf("%s:%s/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name))
		database.CloseDB(db)
	}

	if cfg.Redis.Enabled {
		if client, err := cache.NewRedisClient(ctx, cfg); err != nil {
			f.SetupCheck("Redis", false, err.Error()+" (in-memory locks will be used)")
		} else {
			f.SetupCheck("Redis", true, cfg.GetRedisAddr())
			client.Close()
		}
	}

	if cfg.Storage.Enabled {
		if client, err := storage.NewMinIOClient(ctx, &cfg.Storage); err != nil {
			f.SetupCheck("Object storage", false, err.Error()+" (audio stays on local disk)")
		} else if info, err := client.GetBucketInfo(ctx); err != nil {
			f.SetupCheck("Object storage", false, err.Error())
		} else {
			f.SetupCheck("Object storage", true, fmt.Sprintf("bucket %v, %v archived recordings", info["bucket"], info["audio_files"]))
		}
	}

	return ok
}

func llmKey(cfg *config.Config) (string, string) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return cfg.LLM.OpenAIAPIKey, "OpenAI API key"
	case config.ProviderGroq:
		return cfg.LLM.GroqAPIKey, "Groq API key"
	case config.ProviderAnthropic:
		return cfg.LLM.AnthropicAPIKey, "Anthropic API key"
	}
	return "", ""
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
