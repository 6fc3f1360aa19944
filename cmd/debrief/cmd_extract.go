package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"debrief/internal/event"
	"debrief/internal/session"
)

var extractCmd = &cobra.Command{
	Use:   "extract <session-file>",
	Short: "Extract the canonical narrative without calling the generation service",
	Long: `Extract parses a session file, normalizes its event timeline and prints
the narrative the synthesis stage would see. Useful for checking what a
session actually contains before spending a generation call on it.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	sess, err := session.LoadFile(args[0])
	if err != nil {
		return err
	}

	ex := event.Extract(sess.Events)
	if ex.Question == "" {
		ex.Question = sess.Topic
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Question:   %s\n", ex.Question)
	fmt.Fprintf(out, "Confidence: %.0f/100\n", ex.Confidence)
	fmt.Fprintf(out, "Events:     %d\n\n", len(sess.Events))
	fmt.Fprintln(out, ex.Narrative)
	return nil
}
