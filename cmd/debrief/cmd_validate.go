package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"debrief/internal/brief"
	"debrief/internal/format"
)

var validateCmd = &cobra.Command{
	Use:   "validate <brief-json>",
	Short: "Check a brief document against the full contract",
	Long: `Validate parses a brief JSON file and checks every contract rule,
reporting all violations at once rather than stopping at the first.
Exits non-zero when the document is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read brief: %w", err)
	}

	res := brief.Validate(data)
	out := cmd.OutOrStdout()
	if !res.Valid {
		fmt.Fprintf(out, "INVALID: %d violation(s)\n\n", len(res.Errors))
		fmt.Fprintln(out, format.ViolationTable(res.Errors, format.ASCII))
		return fmt.Errorf("brief failed validation")
	}

	fmt.Fprintln(out, "VALID")
	fmt.Fprint(out, format.BriefSummary(res.Brief, format.ASCII))
	return nil
}
