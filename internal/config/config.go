// Package config loads settings from the environment and an optional .env
// file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fitness-planner/internal/generator"
	"fitness-planner/internal/imagegen"
	"fitness-planner/internal/speech"
	"fitness-planner/internal/store"
)

const (
	StoreSQLite = "sqlite"
	StoreGitHub = "github"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	GeminiAPIKey string
	GeminiModel  string
	ImageBaseURL string

	ServerURL string

	StoreBackend string
	StorePath    string
	GitHubToken  string
	GitHubRepo   string
	GitHubAPIURL string

	SpeechCommand string
	PDFFont       string
}

// env maps viper keys to the environment variables that set them.
var env = map[string]string{
	"port":            "PORT",
	"allowed_origins": "ALLOWED_ORIGINS",
	"log_level":       "LOG_LEVEL",
	"gemini_api_key":  "GEMINI_API_KEY",
	"gemini_model":    "GEMINI_MODEL",
	"image_base_url":  "IMAGE_BASE_URL",
	"server_url":      "FITPLAN_SERVER",
	"store_backend":   "STORE_BACKEND",
	"store_path":      "STORE_PATH",
	"github_token":    "UP_TOK",
	"github_repo":     "GITHUB_REPO",
	"github_api_url":  "GITHUB_API_URL",
	"speech_command":  "SPEECH_COMMAND",
	"pdf_font":        "PDF_FONT",
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fitplan", "plan.db")
}

// Load reads .env from the working directory when present, then the
// environment. Environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("gemini_model", generator.DefaultModel)
	v.SetDefault("image_base_url", imagegen.DefaultBaseURL)
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("store_backend", StoreSQLite)
	v.SetDefault("store_path", defaultStorePath())
	v.SetDefault("github_api_url", store.DefaultGitHubAPI)
	v.SetDefault("speech_command", speech.DefaultCommand)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		LogLevel:       v.GetString("log_level"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		GeminiModel:    v.GetString("gemini_model"),
		ImageBaseURL:   v.GetString("image_base_url"),
		ServerURL:      strings.TrimRight(v.GetString("server_url"), "/"),
		StoreBackend:   strings.ToLower(v.GetString("store_backend")),
		StorePath:      v.GetString("store_path"),
		GitHubToken:    v.GetString("github_token"),
		GitHubRepo:     v.GetString("github_repo"),
		GitHubAPIURL:   v.GetString("github_api_url"),
		SpeechCommand:  v.GetString("speech_command"),
		PDFFont:        v.GetString("pdf_font"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreSQLite:
	case StoreGitHub:
		if c.GitHubRepo == "" {
			return errors.New("GITHUB_REPO is required for the github store")
		}
	default:
		return errors.New("STORE_BACKEND must be sqlite or github")
	}
	return nil
}

// RequireProviderKey reports a missing Gemini key. Only commands that call
// the provider need it.
func (c *Config) RequireProviderKey() error {
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
