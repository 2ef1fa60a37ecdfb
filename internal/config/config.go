// Package config loads and persists the user profile: the single JSON
// document holding identity fields and service configuration for the
// Ollama server and the Supabase note store.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ErrNotConfigured is returned when no profile exists yet.
var ErrNotConfigured = errors.New("setup not found, run 'logswise-cli setup' first")

// Profile is the user's stored identity and service configuration.
// Field names in the JSON document match the original setup.json layout.
type Profile struct {
	Profession        string `json:"profession"`
	JobTitle          string `json:"jobTitle"`
	CompanyName       string `json:"companyName"`
	CompanySize       string `json:"companySize"`
	YearsExperience   string `json:"yearsExperience"`
	PreferredLanguage string `json:"preferredLanguage"`
	WorkMode          string `json:"workMode"`
	LLMName           string `json:"llmName"`
	EmbeddingModel    string `json:"embeddingModel"`
	OllamaBaseURL     string `json:"ollamaBaseUrl"`
	SupabaseURL       string `json:"supabaseUrl"`
	SupabaseAPIKey    string `json:"supabaseApiKey"`
	InstallationID    string `json:"installationId,omitempty"`
}

const (
	defaultOllamaBaseURL  = "http://localhost:11434"
	defaultEmbeddingModel = "nomic-embed-text"
)

// Dir returns the configuration directory, ~/.logswise by default.
// LOGSWISE_CONFIG_DIR overrides it (also used by tests).
func Dir() (string, error) {
	if dir := os.Getenv("LOGSWISE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".logswise"), nil
}

func profilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "setup.json"), nil
}

// Load reads the profile from disk, applies LOGSWISE_* environment
// overrides, fills defaults, and validates the result once. A missing
// file is ErrNotConfigured; everything downstream depends on the profile
// so callers treat load failures as fatal for the current command.
func Load() (Profile, error) {
	// A .env next to the working directory may carry the service
	// credentials; absence is not an error.
	_ = godotenv.Load()

	path, err := profilePath()
	if err != nil {
		return Profile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, ErrNotConfigured
		}
		return Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing %s (check the file format or re-run setup): %w", path, err)
	}

	applyEnvOverrides(&p)
	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save writes the profile, creating the config directory if needed.
func Save(p Profile) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "setup.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// envOverrides maps environment variables onto profile fields so service
// endpoints and models can be switched without editing setup.json.
var envOverrides = []struct {
	env   string
	apply func(p *Profile, v string)
}{
	{"LOGSWISE_LLM_NAME", func(p *Profile, v string) { p.LLMName = v }},
	{"LOGSWISE_EMBEDDING_MODEL", func(p *Profile, v string) { p.EmbeddingModel = v }},
	{"LOGSWISE_OLLAMA_BASE_URL", func(p *Profile, v string) { p.OllamaBaseURL = v }},
	{"LOGSWISE_SUPABASE_URL", func(p *Profile, v string) { p.SupabaseURL = v }},
	{"LOGSWISE_SUPABASE_API_KEY", func(p *Profile, v string) { p.SupabaseAPIKey = v }},
}

func applyEnvOverrides(p *Profile) {
	for _, o := range envOverrides {
		if v := os.Getenv(o.env); v != "" {
			o.apply(p, v)
		}
	}
}

func applyDefaults(p *Profile) {
	if p.OllamaBaseURL == "" {
		p.OllamaBaseURL = defaultOllamaBaseURL
	}
	if p.EmbeddingModel == "" {
		p.EmbeddingModel = defaultEmbeddingModel
	}
}
