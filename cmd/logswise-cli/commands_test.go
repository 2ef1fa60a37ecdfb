package main

import (
	"strings"
	"testing"

	"github.com/k61b/logswise-cli/internal/config"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestSetupCommand_SavesProfile(t *testing.T) {
	t.Setenv("LOGSWISE_CONFIG_DIR", t.TempDir())

	err := runCommand(t, "setup",
		"--profession", "Software Developer",
		"--llm", "llama3",
		"--supabase-url", "https://abc.supabase.co",
		"--supabase-key", "a-long-enough-service-role-key",
	)
	if err != nil {
		t.Fatalf("setup error = %v", err)
	}

	p, err := config.Load()
	if err != nil {
		t.Fatalf("Load() after setup error = %v", err)
	}
	if p.Profession != "Software Developer" || p.LLMName != "llama3" {
		t.Errorf("saved profile = %+v", p)
	}
	if p.InstallationID == "" {
		t.Error("InstallationID not assigned during setup")
	}
	if p.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %q, want flag default", p.OllamaBaseURL)
	}
}

func TestSetupCommand_KeepsInstallationID(t *testing.T) {
	t.Setenv("LOGSWISE_CONFIG_DIR", t.TempDir())

	args := []string{"setup",
		"--profession", "Software Developer",
		"--supabase-url", "https://abc.supabase.co",
		"--supabase-key", "a-long-enough-service-role-key",
	}
	if err := runCommand(t, args...); err != nil {
		t.Fatal(err)
	}
	first, _ := config.Load()

	if err := runCommand(t, args...); err != nil {
		t.Fatal(err)
	}
	second, _ := config.Load()

	if first.InstallationID == "" || first.InstallationID != second.InstallationID {
		t.Errorf("InstallationID changed across setups: %q -> %q", first.InstallationID, second.InstallationID)
	}
}

func TestSetupCommand_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("LOGSWISE_CONFIG_DIR", t.TempDir())

	err := runCommand(t, "setup", "--supabase-url", "not-a-url", "--supabase-key", "a-long-enough-service-role-key")
	if err == nil {
		t.Fatal("setup accepted an invalid Supabase URL")
	}
	if !strings.Contains(err.Error(), "supabaseUrl") {
		t.Errorf("error = %v, want supabaseUrl validation", err)
	}
}

func TestNoteCommand_RequiresContent(t *testing.T) {
	t.Setenv("LOGSWISE_CONFIG_DIR", t.TempDir())

	if err := runCommand(t, "note"); err == nil {
		t.Error("note with no content accepted")
	}
}

func TestCommandsRequireSetup(t *testing.T) {
	t.Setenv("LOGSWISE_CONFIG_DIR", t.TempDir())

	for _, args := range [][]string{
		{"suggestion", "anything"},
		{"chat", "hello"},
		{"search", "topic"},
		{"recent"},
		{"stats"},
	} {
		if err := runCommand(t, args...); err == nil {
			t.Errorf("%v succeeded without setup", args)
		}
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if got := colorize(colorGreen, "ok"); got != "ok" {
		t.Errorf("colorize with noColor=true = %q, want plain text", got)
	}

	noColor = false
	if got := colorize(colorGreen, "ok"); !strings.Contains(got, "\033[32m") {
		t.Errorf("colorize with noColor=false = %q, want ANSI codes", got)
	}
}

func TestOrDash(t *testing.T) {
	if orDash("") != "-" {
		t.Error(`orDash("") != "-"`)
	}
	if orDash("x") != "x" {
		t.Error(`orDash("x") != "x"`)
	}
}
