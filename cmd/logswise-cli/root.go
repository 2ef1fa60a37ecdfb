package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/k61b/logswise-cli/internal/assistant"
	"github.com/k61b/logswise-cli/internal/config"
	"github.com/k61b/logswise-cli/internal/ollama"
	"github.com/k61b/logswise-cli/internal/personalization"
	"github.com/k61b/logswise-cli/internal/supabase"
)

var (
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "logswise-cli",
	Short: "Effortless notes, context-aware suggestions, and AI chat",
	Long: `A command-line tool for note-taking, context-aware suggestions, and
AI chat powered by Ollama and Supabase.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(suggestionCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(personalizeCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(mcpCmd)
}

// deps bundles everything a command needs once the profile loads.
type deps struct {
	profile   config.Profile
	ollama    *ollama.Client
	store     *supabase.Client
	contexts  *personalization.FileStore
	assistant *assistant.Assistant
}

var loadDeps = func() (*deps, error) {
	profile, err := config.Load()
	if err != nil {
		return nil, err
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	oc := ollama.New(profile.OllamaBaseURL)
	sc := supabase.New(profile.SupabaseURL, profile.SupabaseAPIKey)
	contexts := personalization.NewFileStore(dir)

	return &deps{
		profile:   profile,
		ollama:    oc,
		store:     sc,
		contexts:  contexts,
		assistant: assistant.New(profile, oc, sc, contexts),
	}, nil
}
