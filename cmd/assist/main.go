// ABOUTME: Main entry point for the assist CLI client
// ABOUTME: Talks to a running Scholar Assist API server

// Command assist is a terminal client for the Scholar Assist API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"scholar-assist-api/client/selection"
)

var (
	flagAPI   string
	flagState string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "assist",
	Short: "Scholar Assist terminal client",
	Long:  `A command-line client for searching academic papers and asking a research agent about them through a Scholar Assist API server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "http://localhost:8000", "Base URL of the Scholar Assist API server")
	rootCmd.PersistentFlags().StringVar(&flagState, "state", defaultStatePath(), "Path of the selection state file")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(selectionCmd)
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".assist-state"
	}
	return filepath.Join(home, ".assist-state")
}

// loadSelection reads the encoded selection state. A missing or unreadable
// file yields an empty selection.
func loadSelection() *selection.Selection {
	data, err := os.ReadFile(flagState)
	if err != nil {
		return selection.New()
	}
	return selection.Decode(string(data))
}

func saveSelection(sel *selection.Selection) error {
	if err := os.WriteFile(flagState, []byte(sel.Encode()), 0o644); err != nil {
		return fmt.Errorf("failed to save selection state: %w", err)
	}
	return nil
}
