package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError points at the profile field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the service configuration. Identity fields are free
// text and never rejected. The LLM name is deliberately not required:
// note capture and embedding-only search work without one, and the
// assistant reports its absence at the point of use.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.SupabaseURL) == "" {
		return &ValidationError{Field: "supabaseUrl", Message: "cannot be empty"}
	}
	if !strings.HasPrefix(p.SupabaseURL, "http://") && !strings.HasPrefix(p.SupabaseURL, "https://") {
		return &ValidationError{Field: "supabaseUrl", Message: "must start with http:// or https://"}
	}
	if _, err := url.Parse(p.SupabaseURL); err != nil {
		return &ValidationError{Field: "supabaseUrl", Message: "not a valid URL"}
	}
	if strings.TrimSpace(p.SupabaseAPIKey) == "" {
		return &ValidationError{Field: "supabaseApiKey", Message: "cannot be empty"}
	}
	if len(p.SupabaseAPIKey) < 10 || strings.ContainsAny(p.SupabaseAPIKey, " \t") {
		return &ValidationError{Field: "supabaseApiKey", Message: "does not look like a Supabase API key"}
	}
	if u, err := url.Parse(p.OllamaBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "ollamaBaseUrl", Message: "must be a full URL like http://localhost:11434"}
	}
	if err := validModelName("llmName", p.LLMName); err != nil {
		return err
	}
	return validModelName("embeddingModel", p.EmbeddingModel)
}

// validModelName rejects values that would break the Ollama request
// body. Empty is allowed; presence is checked at the point of use.
func validModelName(field, name string) error {
	if len(name) > 100 {
		return &ValidationError{Field: field, Message: "model name is too long"}
	}
	if strings.ContainsAny(name, `"'`) {
		return &ValidationError{Field: field, Message: "model name must not contain quotes"}
	}
	return nil
}
