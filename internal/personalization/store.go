package personalization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/k61b/logswise-cli/internal/config"
)

const contextFileName = "enhanced_context.json"

// Store persists the user context between runs.
type Store interface {
	Load() (*UserContext, error)
	Save(*UserContext) error
}

// FileStore keeps the context as a JSON document in the config directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the stored context. os.IsNotExist on the returned error
// means no context has been saved yet.
func (s *FileStore) Load() (*UserContext, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, contextFileName))
	if err != nil {
		return nil, err
	}
	var ctx UserContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", contextFileName, err)
	}
	if ctx.InteractionHistory.FeedbackPatterns == nil {
		ctx.InteractionHistory.FeedbackPatterns = map[string]float32{}
	}
	return &ctx, nil
}

// Save writes the context, creating the directory if needed.
func (s *FileStore) Save(ctx *UserContext) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating context dir: %w", err)
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, contextFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadOrCreate returns the stored context, or a fresh one derived from
// the profile when none exists or the stored one is unreadable.
func LoadOrCreate(store Store, profile config.Profile) *UserContext {
	if ctx, err := store.Load(); err == nil {
		return ctx
	}
	return FromProfile(profile)
}
