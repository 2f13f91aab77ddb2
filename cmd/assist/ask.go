// ABOUTME: Ask subcommand streaming an agent reply to the terminal
// ABOUTME: Composes a synthesis prompt from the selection when in synth mode

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scholar-assist-api/client/selection"
	"scholar-assist-api/client/stream"
	"scholar-assist-api/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]...",
	Short: "Ask the research agent",
	Long: `Sends a prompt to the research agent and streams the reply. In synth mode
with a non-empty selection, the prompt is composed from the selected papers'
titles; any arguments are appended as extra instructions.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	sel := loadSelection()
	prompt := composePrompt(sel, strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("nothing to ask: provide a prompt or select papers in synth mode")
	}

	var finalSections []domain.MarkdownSection
	var failure string
	printed := 0

	consumer := stream.NewConsumer(flagAPI, stream.WithObserver(func(turn domain.AgentTurn, sections []domain.MarkdownSection) {
		switch turn.Status {
		case domain.TurnStreaming:
			// Print only the newly arrived tail.
			fmt.Print(turn.ResponseText[printed:])
			printed = len(turn.ResponseText)
		case domain.TurnDone:
			finalSections = sections
		case domain.TurnErrored:
			failure = turn.ErrorMessage
		}
	}))

	<-consumer.Submit(cmd.Context(), prompt)

	if failure != "" {
		return fmt.Errorf("%s", failure)
	}

	fmt.Println()
	renderOutline(os.Stdout, finalSections)
	return nil
}

// composePrompt builds the outgoing prompt. Synth mode turns the selection
// into a synthesis request; otherwise the typed prompt is used as-is.
func composePrompt(sel *selection.Selection, typed string) string {
	typed = strings.TrimSpace(typed)
	if sel.Mode() != selection.ModeSynth || sel.Len() == 0 {
		return typed
	}

	var b strings.Builder
	b.WriteString("Synthesize the key findings across these papers:\n")
	for _, entry := range sel.Entries() {
		title := entry.Title
		if title == "" {
			title = entry.ID
		}
		fmt.Fprintf(&b, "- %s\n", title)
	}
	if typed != "" {
		b.WriteString("\n")
		b.WriteString(typed)
	}
	return b.String()
}
