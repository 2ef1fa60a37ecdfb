package modes

import "testing"

func TestDetect_KnownEmbeddingModels(t *testing.T) {
	for _, name := range KnownEmbeddingModels() {
		if got := Detect(name); got != ModeEmbedding {
			t.Errorf("Detect(%q) = %v, want ModeEmbedding", name, got)
		}
	}
}

func TestDetect_PrefixMatch(t *testing.T) {
	tests := []string{
		"nomic-embed-text:v1.5",
		"nomic-embed-text-custom-suffix",
		"bge-base-en-v1.5",
		"all-minilm:l6-v2",
	}
	for _, name := range tests {
		if got := Detect(name); got != ModeEmbedding {
			t.Errorf("Detect(%q) = %v, want ModeEmbedding", name, got)
		}
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	if got := Detect("Nomic-Embed-Text"); got != ModeEmbedding {
		t.Errorf("Detect(%q) = %v, want ModeEmbedding", "Nomic-Embed-Text", got)
	}
}

func TestDetect_GenerativeModels(t *testing.T) {
	tests := []string{"llama3", "mistral-nemo", "phi3.5", "qwen2.5-coder", ""}
	for _, name := range tests {
		if got := Detect(name); got != ModeGeneration {
			t.Errorf("Detect(%q) = %v, want ModeGeneration", name, got)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeEmbedding.String() != "embedding" {
		t.Errorf("ModeEmbedding.String() = %q", ModeEmbedding.String())
	}
	if ModeGeneration.String() != "generation" {
		t.Errorf("ModeGeneration.String() = %q", ModeGeneration.String())
	}
}
