// Logswise CLI: effortless notes, context-aware suggestions, and AI
// chat powered by a local Ollama server and a Supabase note store.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
