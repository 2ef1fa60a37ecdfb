package ollama

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbed_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path = %q, want /api/embeddings", r.URL.Path)
		}
		w.Write([]byte(`{"embedding":[0.1,0.2,0.3]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	vec, err := c.Embed(context.Background(), "nomic-embed-text", "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("len(vec) = %d, want 3", len(vec))
	}
}

func TestEmbed_ValidationBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Embed(context.Background(), "nomic-embed-text", "  "); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("empty text: error = %v, want ErrEmptyPrompt", err)
	}
	if _, err := c.Embed(context.Background(), "", "hello"); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("empty model: error = %v, want ErrEmptyModel", err)
	}
	if called {
		t.Error("server was called despite validation failure")
	}
}

func TestEmbed_RejectsExtraKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":[0.1],"error":"model overloaded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Embed(context.Background(), "nomic-embed-text", "hello")
	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, want UnexpectedResponseError", err)
	}
}

func TestEmbed_RejectsWrongShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"not an embedding"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Embed(context.Background(), "nomic-embed-text", "hello")
	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, want UnexpectedResponseError", err)
	}
}

func TestEmbed_ModelNotPulled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Embed(context.Background(), "nomic-embed-text", "hello")
	var notFound *ModelNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ModelNotFoundError", err)
	}
	if notFound.Model != "nomic-embed-text" {
		t.Errorf("Model = %q", notFound.Model)
	}
}

func TestEmbed_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL)
	_, err := c.Embed(context.Background(), "nomic-embed-text", "hello")
	if err == nil {
		t.Fatal("Embed() error = nil, want transport error")
	}
}

func TestGenerate_AssemblesFragments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		w.Write([]byte("{\"response\":\"Hel\"}\n{\"response\":\"lo\"}\n{\"response\":\"\",\"done\":true}\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Generate(context.Background(), "llama3", "say hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Hello" {
		t.Errorf("Generate() = %q, want %q", got, "Hello")
	}
}

func TestGenerate_MidStreamErrorDiscardsPartialOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"response\":\"partial\"}\n{\"error\":\"model crashed\"}\n{\"response\":\"more\"}\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Generate(context.Background(), "llama3", "prompt")
	var stream *StreamError
	if !errors.As(err, &stream) {
		t.Fatalf("error = %v, want StreamError", err)
	}
	if stream.Message != "model crashed" {
		t.Errorf("Message = %q", stream.Message)
	}
	if got != "" {
		t.Errorf("partial output = %q, want discarded", got)
	}
}

func TestGenerate_EmptyResponseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{\"response\":\"  \"}\n{\"response\":\"\",\"done\":true}\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Generate(context.Background(), "llama3", "prompt")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestGenerate_SkipsNonJSONLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all\n{\"response\":\"ok\"}\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Generate(context.Background(), "llama3", "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Generate() = %q, want %q", got, "ok")
	}
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Generate(context.Background(), "llama3", "prompt")
	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if status.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", status.StatusCode)
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"llama3:latest"},{"name":"nomic-embed-text:latest"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("len(models) = %d, want 2", len(models))
	}
	if !c.HasModel(context.Background(), "llama3") {
		t.Error("HasModel(llama3) = false, want true")
	}
	if c.HasModel(context.Background(), "mistral") {
		t.Error("HasModel(mistral) = true, want false")
	}
}
