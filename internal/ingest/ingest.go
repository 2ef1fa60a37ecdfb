// Package ingest turns external sources into note content: plain text
// or PDF files, and web pages reduced to their visible text.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// maxNoteLength caps note content; longer notes embed poorly and blow
// up prompt budgets downstream.
const maxNoteLength = 10000

const fetchTimeout = 30 * time.Second

var (
	ErrEmptyNote = errors.New("note content cannot be empty")

	// ErrNoteTooLong is returned instead of truncating silently.
	ErrNoteTooLong = fmt.Errorf("note content exceeds %d characters", maxNoteLength)
)

// ValidateNote checks content before it is saved or embedded.
func ValidateNote(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyNote
	}
	if len(content) > maxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}

// FromFile reads note content from a file. PDFs are reduced to their
// plain text; anything else is read as-is.
func FromFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fromPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	content := strings.TrimSpace(string(data))
	if err := ValidateNote(content); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}

func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	content := collapseWhitespace(buf.String())
	if err := ValidateNote(content); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}

// FromURL fetches a page and reduces it to its visible text.
func FromURL(rawURL string) (string, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	content, err := ExtractText(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	if err := ValidateNote(content); err != nil {
		return "", fmt.Errorf("%s: %w", rawURL, err)
	}
	return content, nil
}

// ExtractText walks an HTML document and collects visible text,
// skipping script and style subtrees.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(sb.String()), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
