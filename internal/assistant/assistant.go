// Package assistant orchestrates the suggestion and chat flows: it
// embeds the query, retrieves similar notes from the store, assembles a
// personalized prompt, and runs generation against the local model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/k61b/logswise-cli/internal/config"
	"github.com/k61b/logswise-cli/internal/modes"
	"github.com/k61b/logswise-cli/internal/personalization"
)

// defaultTopK is how many similar notes are retrieved per query.
const defaultTopK = 5

var (
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoLLM means the profile has no model configured. Note capture
	// and recency listing still work; suggestion and chat do not.
	ErrNoLLM = errors.New("no LLM configured, set llmName in setup.json or re-run setup")
)

// ModelClient is the slice of the Ollama client the assistant needs.
type ModelClient interface {
	Embed(ctx context.Context, model, text string) ([]float32, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// NoteStore retrieves notes by embedding similarity.
type NoteStore interface {
	SearchNotes(ctx context.Context, embedding []float32, matchCount int) []string
}

// Assistant wires the model, the note store, and the personalization
// context into the suggestion and chat flows.
type Assistant struct {
	model    ModelClient
	notes    NoteStore
	contexts personalization.Store
	profile  config.Profile
	logger   *slog.Logger
	topK     int
}

// New creates an Assistant for the given profile and dependencies.
func New(profile config.Profile, model ModelClient, notes NoteStore, contexts personalization.Store) *Assistant {
	return &Assistant{
		model:    model,
		notes:    notes,
		contexts: contexts,
		profile:  profile,
		logger:   slog.Default(),
		topK:     defaultTopK,
	}
}

// SuggestionResult is the outcome of one suggestion round. In embedding
// mode Notes holds the retrieved contents verbatim and Text is empty;
// in generation mode Text holds the model output.
type SuggestionResult struct {
	Mode  modes.Mode
	Notes []string
	Text  string
}

// Suggest runs the full suggestion flow for a query. The configured
// model name decides the mode: embedding models retrieve and return
// notes verbatim, generative models get a personalized prompt built
// from the retrieved notes.
func (a *Assistant) Suggest(ctx context.Context, query string) (*SuggestionResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if strings.TrimSpace(a.profile.LLMName) == "" {
		return nil, ErrNoLLM
	}

	userCtx := personalization.LoadOrCreate(a.contexts, a.profile)
	mode := modes.Detect(a.profile.LLMName)

	embedding, err := a.model.Embed(ctx, a.profile.EmbeddingModel, query)
	if err != nil {
		return nil, fmt.Errorf("could not generate embedding for query, no suggestions can be made "+
			"(check that the embedding model is pulled, e.g. 'ollama pull %s'): %w",
			a.profile.EmbeddingModel, err)
	}

	notes := a.notes.SearchNotes(ctx, embedding, a.topK)

	if mode == modes.ModeEmbedding {
		return &SuggestionResult{Mode: mode, Notes: notes}, nil
	}

	prompt := userCtx.PromptContext(a.profile, query, notes) + "\n\n" + userCtx.Instruction()

	raw, err := a.model.Generate(ctx, a.profile.LLMName, prompt)
	if err != nil {
		return nil, err
	}

	// Only a coarse topic label is recorded, never the query itself,
	// and a failed save never fails the suggestion.
	userCtx.PushTopic("suggestion_request")
	if err := a.contexts.Save(userCtx); err != nil {
		a.logger.Warn("could not save personalization context", "error", err)
	}

	return &SuggestionResult{Mode: mode, Text: StripReasoning(raw)}, nil
}

// Chat sends a free-form message to the model with the static profile
// as context. No retrieval or personalization context is involved.
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyQuery
	}
	if strings.TrimSpace(a.profile.LLMName) == "" {
		return "", ErrNoLLM
	}

	prompt := fmt.Sprintf(
		"User Info:\n- Profession: %s\n- Job Title: %s\n- Company Name: %s\n- Company Size: %s\n\nUser: %s\nAssistant:",
		a.profile.Profession, a.profile.JobTitle, a.profile.CompanyName, a.profile.CompanySize, message)

	raw, err := a.model.Generate(ctx, a.profile.LLMName, prompt)
	if err != nil {
		return "", err
	}
	return StripReasoning(raw), nil
}

// SearchNotes embeds a query and returns the most similar stored notes.
func (a *Assistant) SearchNotes(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	embedding, err := a.model.Embed(ctx, a.profile.EmbeddingModel, query)
	if err != nil {
		return nil, fmt.Errorf("could not generate embedding for query, no semantic search can be made "+
			"(check that the embedding model is pulled, e.g. 'ollama pull %s'): %w",
			a.profile.EmbeddingModel, err)
	}
	return a.notes.SearchNotes(ctx, embedding, a.topK), nil
}

// StripReasoning drops everything up to and including a trailing
// reasoning marker. Models with visible chain-of-thought emit their
// deliberation before "</think>"; only the text after it is the answer.
func StripReasoning(response string) string {
	if idx := strings.Index(response, "</think>"); idx >= 0 {
		return strings.TrimSpace(response[idx+len("</think>"):])
	}
	return strings.TrimSpace(response)
}
