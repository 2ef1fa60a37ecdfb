package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/k61b/logswise-cli/internal/config"
	"github.com/k61b/logswise-cli/internal/ingest"
	"github.com/k61b/logswise-cli/internal/mcpserver"
	"github.com/k61b/logswise-cli/internal/modes"
	"github.com/k61b/logswise-cli/internal/personalization"
)

// --- setup ---

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up your profile and service configuration",
	Long: `Set up your profile and service configuration.

Examples:
  logswise-cli setup --profession "Software Developer" --llm llama3 \
    --supabase-url https://abc.supabase.co --supabase-key <key>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := config.Profile{}
		p.Profession, _ = cmd.Flags().GetString("profession")
		p.JobTitle, _ = cmd.Flags().GetString("job-title")
		p.CompanyName, _ = cmd.Flags().GetString("company")
		p.CompanySize, _ = cmd.Flags().GetString("company-size")
		p.YearsExperience, _ = cmd.Flags().GetString("experience")
		p.PreferredLanguage, _ = cmd.Flags().GetString("language")
		p.WorkMode, _ = cmd.Flags().GetString("work-mode")
		p.LLMName, _ = cmd.Flags().GetString("llm")
		p.EmbeddingModel, _ = cmd.Flags().GetString("embedding-model")
		p.OllamaBaseURL, _ = cmd.Flags().GetString("ollama-url")
		p.SupabaseURL, _ = cmd.Flags().GetString("supabase-url")
		p.SupabaseAPIKey, _ = cmd.Flags().GetString("supabase-key")

		// Keep the installation ID across re-runs of setup.
		if existing, err := config.Load(); err == nil && existing.InstallationID != "" {
			p.InstallationID = existing.InstallationID
		} else {
			p.InstallationID = uuid.NewString()
		}

		if err := p.Validate(); err != nil {
			return err
		}
		if err := config.Save(p); err != nil {
			return err
		}

		dir, _ := config.Dir()
		printSuccess("Profile saved to %s/setup.json", dir)
		if p.LLMName == "" {
			printWarning("No LLM configured. Note capture works, suggestions and chat need --llm")
		}
		if modes.Detect(p.LLMName) == modes.ModeEmbedding {
			printStep("%s is an embedding model: suggestions run in semantic-search-only mode", p.LLMName)
		}
		return nil
	},
}

func init() {
	setupCmd.Flags().String("profession", "", "your profession (e.g. Software Developer)")
	setupCmd.Flags().String("job-title", "", "your job title")
	setupCmd.Flags().String("company", "", "company name")
	setupCmd.Flags().String("company-size", "", "company size (e.g. 51-200)")
	setupCmd.Flags().String("experience", "", "experience level (e.g. Senior (5-8 years))")
	setupCmd.Flags().String("language", "", "preferred language or stack")
	setupCmd.Flags().String("work-mode", "", "work mode (remote, hybrid, office)")
	setupCmd.Flags().String("llm", "", "Ollama model for generation (e.g. llama3)")
	setupCmd.Flags().String("embedding-model", "nomic-embed-text", "Ollama model for embeddings")
	setupCmd.Flags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	setupCmd.Flags().String("supabase-url", "", "Supabase project URL")
	setupCmd.Flags().String("supabase-key", "", "Supabase API key")
}

// --- note ---

var noteCmd = &cobra.Command{
	Use:     "note [content]",
	Aliases: []string{"n"},
	Short:   "Add a note to your collection",
	Long: `Add a note to your collection.

Examples:
  logswise-cli note "Fixed the flaky importer test"
  logswise-cli note --file ./meeting-notes.pdf
  logswise-cli note --url https://example.com/postmortem`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		url, _ := cmd.Flags().GetString("url")

		var content string
		var err error
		switch {
		case file != "":
			content, err = ingest.FromFile(file)
		case url != "":
			content, err = ingest.FromURL(url)
		case len(args) > 0:
			content = strings.Join(args, " ")
			err = ingest.ValidateNote(content)
		default:
			return fmt.Errorf("provide note content as an argument, or use --file or --url")
		}
		if err != nil {
			return err
		}

		d, err := loadDeps()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		// The note is saved even when embedding fails; it just won't
		// surface in semantic search until re-embedded.
		embedding, err := d.ollama.Embed(ctx, d.profile.EmbeddingModel, content)
		if err != nil {
			printWarning("could not generate embedding, saving note without one: %v", err)
			embedding = nil
		}

		if err := d.store.AddNote(ctx, content, embedding); err != nil {
			return err
		}
		printSuccess("Note saved")
		return nil
	},
}

func init() {
	noteCmd.Flags().String("file", "", "read note content from a file (text or PDF)")
	noteCmd.Flags().String("url", "", "fetch note content from a URL")
}

// --- recent ---

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		d, err := loadDeps()
		if err != nil {
			return err
		}

		notes, err := d.store.RecentNotes(cmd.Context(), count)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}
		for i, n := range notes {
			fmt.Printf("%s %s\n", colorize(colorBold, fmt.Sprintf("%d.", i+1)), n.Content)
			if n.CreatedAt != "" {
				fmt.Printf("   %s\n", colorize(colorCyan, n.CreatedAt))
			}
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntP("count", "c", 5, "number of recent notes to show")
}

// --- suggestion ---

var suggestionCmd = &cobra.Command{
	Use:     "suggestion <query>",
	Aliases: []string{"s"},
	Short:   "Get context-aware suggestions for a query",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		d, err := loadDeps()
		if err != nil {
			return err
		}

		if modes.Detect(d.profile.LLMName) == modes.ModeEmbedding {
			printStep("Running in embedding-only mode (semantic search, no LLM generation). Model: %s", d.profile.LLMName)
		} else {
			printStep("Using Ollama model: %s", d.profile.LLMName)
		}

		result, err := d.assistant.Suggest(cmd.Context(), query)
		if err != nil {
			return err
		}

		if result.Mode == modes.ModeEmbedding {
			if len(result.Notes) == 0 {
				fmt.Println("No relevant notes found.")
				return nil
			}
			fmt.Println("\nRelevant Notes:")
			for i, n := range result.Notes {
				fmt.Printf("%d. %s\n", i+1, n)
			}
			return nil
		}

		fmt.Printf("\n%s\n\n", colorize(colorBold, "==================== Suggestions ===================="))
		fmt.Println(result.Text)
		return nil
	},
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:     "chat <message>",
	Aliases: []string{"c"},
	Short:   "Chat with the AI assistant",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		d, err := loadDeps()
		if err != nil {
			return err
		}

		printStep("Using Ollama model: %s", d.profile.LLMName)
		reply, err := d.assistant.Chat(cmd.Context(), message)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search over your notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		d, err := loadDeps()
		if err != nil {
			return err
		}

		notes, err := d.assistant.SearchNotes(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No relevant notes found.")
			return nil
		}
		for i, n := range notes {
			fmt.Printf("%d. %s\n", i+1, n)
		}
		return nil
	},
}

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display your profile and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := config.Load()
		if err != nil {
			return err
		}

		dir, _ := config.Dir()
		fmt.Printf("Profile loaded from %s/setup.json\n", dir)
		printStatus("Profession", "%s", orDash(profile.Profession))
		printStatus("Job Title", "%s", orDash(profile.JobTitle))
		printStatus("Company", "%s (%s employees)", orDash(profile.CompanyName), orDash(profile.CompanySize))
		printStatus("LLM", "%s", orDash(profile.LLMName))
		printStatus("Mode", "%s", modes.Detect(profile.LLMName))
		printStatus("Embedding Model", "%s", orDash(profile.EmbeddingModel))
		printStatus("Ollama Base URL", "%s", orDash(profile.OllamaBaseURL))
		printStatus("Supabase URL", "%s", orDash(profile.SupabaseURL))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// --- personalize ---

var personalizeCmd = &cobra.Command{
	Use:   "personalize",
	Short: "Inspect and tune the personalization context",
}

var personalizeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the learned personalization context",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps()
		if err != nil {
			return err
		}

		ctx := personalization.LoadOrCreate(d.contexts, d.profile)
		printStatus("Communication", "%s", ctx.Preferences.CommunicationStyle)
		printStatus("Learning", "%s (complexity: %s)", ctx.LearningStyle.PreferredFormat, ctx.LearningStyle.ComplexityPreference)
		printStatus("Focus Areas", "%s", strings.Join(ctx.Preferences.FocusAreas, ", "))
		printStatus("Acceptance Rate", "%.1f%%", ctx.InteractionHistory.SuggestionAcceptanceRate*100)
		printStatus("Engaged Categories", "%s", strings.Join(ctx.InteractionHistory.MostEngagedCategories, ", "))
		printStatus("Projects", "%d documented", len(ctx.CurrentProjects))
		printStatus("Goals", "%d tracked", len(ctx.Goals))
		return nil
	},
}

var personalizeFeedbackCmd = &cobra.Command{
	Use:   "feedback <category> <accepted> <satisfaction>",
	Short: "Record feedback on a suggestion round",
	Long: `Record feedback on a suggestion round.

Category is a free label (learning, productivity, ...), accepted is
true/false, satisfaction is a score from 0 to 1.

Example:
  logswise-cli personalize feedback learning true 0.9`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		accepted, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("accepted must be true or false: %w", err)
		}
		satisfaction, err := strconv.ParseFloat(args[2], 32)
		if err != nil || satisfaction < 0 || satisfaction > 1 {
			return fmt.Errorf("satisfaction must be a number between 0 and 1")
		}

		d, err := loadDeps()
		if err != nil {
			return err
		}

		ctx := personalization.LoadOrCreate(d.contexts, d.profile)
		ctx.RecordInteraction(args[0], accepted, float32(satisfaction))
		if err := d.contexts.Save(ctx); err != nil {
			return err
		}
		printSuccess("Feedback recorded for %q", args[0])
		return nil
	},
}

func init() {
	personalizeCmd.AddCommand(personalizeShowCmd)
	personalizeCmd.AddCommand(personalizeFeedbackCmd)
}

// --- doctor ---

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration health and connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(colorize(colorBold, "Logswise CLI Health Check"))

		d, err := loadDeps()
		if err != nil {
			printError("configuration: %v", err)
			return fmt.Errorf("health check failed")
		}
		printSuccess("configuration loaded")

		issues := runChecks(cmd.Context(), d)
		if issues > 0 {
			return fmt.Errorf("health check found %d issue(s)", issues)
		}
		printSuccess("all checks passed")
		return nil
	},
}

// runChecks probes Ollama and Supabase concurrently and reports each
// result. It returns the number of failed checks.
func runChecks(ctx context.Context, d *deps) int {
	type check struct {
		name string
		err  error
	}
	results := make([]check, 4)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = check{"Ollama server", pingOllama(ctx, d)}
		return nil
	})
	g.Go(func() error {
		results[1] = check{"Ollama models", checkModels(ctx, d)}
		return nil
	})
	g.Go(func() error {
		results[2] = check{"Supabase connectivity", d.store.Ping(ctx)}
		return nil
	})
	g.Go(func() error {
		results[3] = check{"notes table", checkNotesTable(ctx, d)}
		return nil
	})
	_ = g.Wait()

	issues := 0
	for _, c := range results {
		if c.err != nil {
			printError("%s: %v", c.name, c.err)
			issues++
		} else {
			printSuccess("%s", c.name)
		}
	}
	return issues
}

func pingOllama(ctx context.Context, d *deps) error {
	if !d.ollama.IsRunning(ctx) {
		return fmt.Errorf("not reachable at %s, start it with 'ollama serve'", d.profile.OllamaBaseURL)
	}
	return nil
}

func checkModels(ctx context.Context, d *deps) error {
	var missing []string
	if d.profile.LLMName != "" && !d.ollama.HasModel(ctx, d.profile.LLMName) {
		missing = append(missing, d.profile.LLMName)
	}
	if !d.ollama.HasModel(ctx, d.profile.EmbeddingModel) {
		missing = append(missing, d.profile.EmbeddingModel)
	}
	if len(missing) > 0 {
		return fmt.Errorf("not pulled: %s (run 'ollama pull <model>')", strings.Join(missing, ", "))
	}
	return nil
}

func checkNotesTable(ctx context.Context, d *deps) error {
	exists, err := d.store.CheckNotesTable(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("missing: create the notes table and the semantic_search_notes function in your Supabase project")
	}
	return nil
}

// --- mcp ---

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve notes over the Model Context Protocol (stdio)",
	Long: `Serve notes over the Model Context Protocol on stdin/stdout.

Register the binary with an MCP client to let agents capture and
search your notes:
  logswise-cli mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps()
		if err != nil {
			return err
		}
		s := mcpserver.New(d.store, d.assistant, d.store)
		return mcpserver.ServeStdio(s)
	},
}
