package ingest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateNote(t *testing.T) {
	if err := ValidateNote("a useful note"); err != nil {
		t.Errorf("ValidateNote() error = %v", err)
	}
	if err := ValidateNote("   \n\t"); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("whitespace note: error = %v, want ErrEmptyNote", err)
	}
	if err := ValidateNote(strings.Repeat("x", maxNoteLength+1)); !errors.Is(err, ErrNoteTooLong) {
		t.Errorf("oversized note: error = %v, want ErrNoteTooLong", err)
	}
	if err := ValidateNote(strings.Repeat("x", maxNoteLength)); err != nil {
		t.Errorf("note at the cap: error = %v, want nil", err)
	}
}

func TestFromFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("  retro went well\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if got != "retro went well" {
		t.Errorf("FromFile() = %q", got)
	}
}

func TestFromFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("FromFile() error = %v, want ErrEmptyNote", err)
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("FromFile() error = nil for missing file")
	}
}

func TestExtractText_SkipsScriptAndStyle(t *testing.T) {
	page := `<html><head>
		<style>body { color: red; }</style>
		<script>console.log("hidden")</script>
	</head><body>
		<h1>Release   notes</h1>
		<p>Shipped the   new importer.</p>
	</body></html>`

	got, err := ExtractText(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "Release notes Shipped the new importer." {
		t.Errorf("ExtractText() = %q", got)
	}
	if strings.Contains(got, "hidden") || strings.Contains(got, "color") {
		t.Errorf("script/style text leaked: %q", got)
	}
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Standup summary</p></body></html>"))
	}))
	defer srv.Close()

	got, err := FromURL(srv.URL)
	if err != nil {
		t.Fatalf("FromURL() error = %v", err)
	}
	if got != "Standup summary" {
		t.Errorf("FromURL() = %q", got)
	}
}

func TestFromURL_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FromURL(srv.URL); err == nil {
		t.Error("FromURL() error = nil, want status error")
	}
}
