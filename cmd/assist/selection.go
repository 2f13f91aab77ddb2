// ABOUTME: Selection subcommands for inspecting and mutating saved state
// ABOUTME: show, clear, and mode operate on the encoded state file

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scholar-assist-api/client/selection"
)

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Manage the saved paper selection",
}

var selectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := loadSelection()
		renderSelectionEntries(os.Stdout, sel.Entries(), string(sel.Mode()))
		return nil
	},
}

var selectionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := loadSelection()
		sel.Clear()
		if err := saveSelection(sel); err != nil {
			return err
		}
		fmt.Println("Selection cleared.")
		return nil
	},
}

var selectionModeCmd = &cobra.Command{
	Use:       "mode <preview|synth>",
	Short:     "Set the selection mode",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(selection.ModePreview), string(selection.ModeSynth)},
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := loadSelection()
		sel.SetMode(selection.Mode(args[0]))
		if err := saveSelection(sel); err != nil {
			return err
		}
		fmt.Printf("Mode set to %s.\n", sel.Mode())
		return nil
	},
}

func init() {
	selectionCmd.AddCommand(selectionShowCmd)
	selectionCmd.AddCommand(selectionClearCmd)
	selectionCmd.AddCommand(selectionModeCmd)
}
