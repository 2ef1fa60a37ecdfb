package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validProfile() Profile {
	return Profile{
		Profession:     "Software Developer",
		JobTitle:       "Senior Engineer",
		LLMName:        "llama3",
		EmbeddingModel: "nomic-embed-text",
		OllamaBaseURL:  "http://localhost:11434",
		SupabaseURL:    "https://abc.supabase.co",
		SupabaseAPIKey: "a-long-enough-service-role-key",
	}
}

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOGSWISE_CONFIG_DIR", dir)
	return dir
}

func TestLoad_MissingFileIsNotConfigured(t *testing.T) {
	useTempConfigDir(t)
	if _, err := Load(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Load() error = %v, want ErrNotConfigured", err)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	useTempConfigDir(t)
	want := validProfile()
	want.InstallationID = "11111111-2222-3333-4444-555555555555"

	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	dir := useTempConfigDir(t)
	if err := os.WriteFile(filepath.Join(dir, "setup.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	useTempConfigDir(t)
	p := validProfile()
	p.OllamaBaseURL = ""
	p.EmbeddingModel = ""
	if err := Save(p); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %q, want default", got.OllamaBaseURL)
	}
	if got.EmbeddingModel != "nomic-embed-text" {
		t.Errorf("EmbeddingModel = %q, want default", got.EmbeddingModel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	useTempConfigDir(t)
	if err := Save(validProfile()); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGSWISE_LLM_NAME", "qwen3")
	t.Setenv("LOGSWISE_OLLAMA_BASE_URL", "http://ollama.internal:11434")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LLMName != "qwen3" {
		t.Errorf("LLMName = %q, want env override", got.LLMName)
	}
	if got.OllamaBaseURL != "http://ollama.internal:11434" {
		t.Errorf("OllamaBaseURL = %q, want env override", got.OllamaBaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Profile)
		wantField string
	}{
		{"valid", func(p *Profile) {}, ""},
		{"missing llm is fine", func(p *Profile) { p.LLMName = "" }, ""},
		{"empty supabase url", func(p *Profile) { p.SupabaseURL = "" }, "supabaseUrl"},
		{"bad scheme", func(p *Profile) { p.SupabaseURL = "ftp://abc.supabase.co" }, "supabaseUrl"},
		{"empty key", func(p *Profile) { p.SupabaseAPIKey = "" }, "supabaseApiKey"},
		{"short key", func(p *Profile) { p.SupabaseAPIKey = "tiny" }, "supabaseApiKey"},
		{"key with spaces", func(p *Profile) { p.SupabaseAPIKey = "a key with spaces in it" }, "supabaseApiKey"},
		{"bare ollama host", func(p *Profile) { p.OllamaBaseURL = "localhost:11434" }, "ollamaBaseUrl"},
		{"quoted model name", func(p *Profile) { p.LLMName = `llama"3` }, "llmName"},
		{"oversized model name", func(p *Profile) { p.EmbeddingModel = strings.Repeat("m", 101) }, "embeddingModel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
