// Package supabase is a client for the remote note store: a Supabase
// project exposing a notes table over PostgREST plus a pgvector-backed
// semantic_search_notes RPC.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// checkTimeout bounds connectivity checks so doctor never hangs on a
// misconfigured URL. Data calls rely on the default client behaviour.
const checkTimeout = 10 * time.Second

// Note is a stored note as returned by the recency listing.
type Note struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Client talks to a Supabase project over its REST interface.
type Client struct {
	projectURL string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the given project URL and API key.
func New(projectURL, apiKey string) *Client {
	return &Client{
		projectURL: strings.TrimRight(projectURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.projectURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// AddNote persists a note, optionally with its embedding vector. The
// store assigns the note its identifier and timestamp.
func (c *Client) AddNote(ctx context.Context, content string, embedding []float32) error {
	payload := map[string]any{"content": content}
	if embedding != nil {
		payload["embedding"] = embedding
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/rest/v1/notes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("saving note: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

// SearchNotes returns the contents of the top matchCount notes by cosine
// similarity to the embedding. Search is best-effort: any network or
// parse failure is logged and degrades to an empty result, because
// missing context must never block suggestion or chat generation.
func (c *Client) SearchNotes(ctx context.Context, embedding []float32, matchCount int) []string {
	payload := map[string]any{
		"query_embedding": encodeVector(embedding),
		"match_count":     matchCount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("semantic search skipped", "error", err)
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/rest/v1/rpc/semantic_search_notes", bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("semantic search skipped", "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("semantic search failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("semantic search failed", "status", resp.StatusCode)
		return nil
	}

	var rows []struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		c.logger.Warn("semantic search returned malformed payload", "error", err)
		return nil
	}

	notes := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Content != "" {
			notes = append(notes, r.Content)
		}
	}
	return notes
}

// RecentNotes lists the newest notes, newest first.
func (c *Client) RecentNotes(ctx context.Context, limit int) ([]Note, error) {
	q := url.Values{}
	q.Set("select", "content,created_at")
	q.Set("order", "created_at.desc")
	q.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/notes?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching notes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching notes: status %d", resp.StatusCode)
	}

	var notes []Note
	if err := json.NewDecoder(resp.Body).Decode(&notes); err != nil {
		return nil, fmt.Errorf("parsing notes: %w", err)
	}
	return notes, nil
}

// Ping verifies connectivity and credentials against the REST root.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("authentication failed: HTTP %d", resp.StatusCode)
	}
	return nil
}

// CheckNotesTable reports whether the notes table exists. A 404 whose
// body mentions a missing relation means the table was never created;
// any other 404 points at a broken project URL.
func (c *Client) CheckNotesTable(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/notes?limit=1", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("checking notes table: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		raw, _ := io.ReadAll(resp.Body)
		text := string(raw)
		if strings.Contains(text, "relation") && strings.Contains(text, "does not exist") {
			return false, nil
		}
		return false, fmt.Errorf("unable to access the database, check the Supabase project URL")
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, fmt.Errorf("invalid API key or insufficient permissions")
	default:
		return false, fmt.Errorf("unexpected response: HTTP %d", resp.StatusCode)
	}
}

// encodeVector renders an embedding as the string-encoded array the
// semantic_search_notes RPC expects, e.g. "[0.1,0.2,0.3]".
func encodeVector(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
