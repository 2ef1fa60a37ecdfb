package ollama

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Common validation errors, checked before any network call is issued.
var (
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
	ErrEmptyModel  = errors.New("model name cannot be empty")

	// ErrEmptyResponse is returned when generation succeeds at the HTTP
	// level but yields no text. Callers must not treat this as a valid
	// empty suggestion.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// ModelNotFoundError is returned on a 404 from the model server, which
// means the requested model has not been pulled locally.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found, pull it first with 'ollama pull %s'", e.Model, e.Model)
}

// UnexpectedResponseError is returned when the server answers with a JSON
// shape the client does not recognise. The raw payload is kept for
// diagnosis; this usually indicates a misconfigured model or endpoint.
type UnexpectedResponseError struct {
	Payload string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response from Ollama: %s", e.Payload)
}

// StreamError is a mid-stream error emitted by the model during
// generation. Partial output preceding it is discarded.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("model reported an error mid-stream: %s", e.Message)
}

// StatusError is a non-200, non-404 HTTP response from the server.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.StatusCode, e.Body)
}

// classifyTransport maps transport failures to actionable messages:
// timeouts, connection refusals, and everything else each get a distinct
// remediation hint. The original error stays wrapped for errors.Is/As.
func classifyTransport(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("request timed out after %s, the model may be loading or the prompt too large: %w", requestTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out after %s, the model may be loading or the prompt too large: %w", requestTimeout, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("connection refused, is the Ollama server running? Start it with 'ollama serve': %w", err)
	}
	return fmt.Errorf("could not reach the Ollama server: %w", err)
}
