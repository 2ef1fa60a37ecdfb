// Package modes decides whether a configured model runs in embedding-only
// mode (semantic retrieval, no text generation) or generation mode.
package modes

import "strings"

// Mode is the operating mode implied by a configured model name.
type Mode int

const (
	// ModeGeneration means the model produces free-text completions.
	ModeGeneration Mode = iota
	// ModeEmbedding means the model only produces embedding vectors;
	// suggestion and chat degrade to semantic search.
	ModeEmbedding
)

func (m Mode) String() string {
	switch m {
	case ModeEmbedding:
		return "embedding"
	case ModeGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// knownEmbeddingModels are canonical embedding model names. A configured
// model matches by exact name or by prefix, so tagged variants such as
// "nomic-embed-text:v1.5" are still detected.
var knownEmbeddingModels = []string{
	"nomic-embed-text",
	"bge-base-en",
	"all-minilm",
}

// Detect classifies a model name. Anything not on the known embedding
// list is treated as generative; Detect is total and never fails.
// An empty model name is rejected upstream before Detect is consulted.
func Detect(model string) Mode {
	name := strings.ToLower(strings.TrimSpace(model))
	for _, known := range knownEmbeddingModels {
		if name == known || strings.HasPrefix(name, known) {
			return ModeEmbedding
		}
	}
	return ModeGeneration
}

// KnownEmbeddingModels returns a copy of the canonical embedding model list.
func KnownEmbeddingModels() []string {
	out := make([]string, len(knownEmbeddingModels))
	copy(out, knownEmbeddingModels)
	return out
}
