package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch CHARACTER_ID",
	Short: "Print a character, then every change to it, until interrupted",
	Long: `watch prints the current sheet and then reprints it whenever an edit
is committed in this process. It stops on Ctrl-C or when the character
is deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	stream, err := sheet.orchestrator.Watch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for c := range stream {
		if !jsonOutput {
			fmt.Printf("--- %s ---\n", c.Updated.Format("2006-01-02 15:04:05"))
		}
		if err := printCharacter(c); err != nil {
			return err
		}
	}
	return nil
}
