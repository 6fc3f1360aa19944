package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"debrief/internal/format"
	"debrief/internal/pipeline"
	"debrief/internal/session"
)

var generateFlags struct {
	output    string
	briefPath string
	renderer  string
}

var generateCmd = &cobra.Command{
	Use:   "generate <session-file>",
	Short: "Run the full pipeline: extract, synthesize, render, compose PDF",
	Long: `Generate runs the complete pipeline on one session file: extracts the
canonical narrative, synthesizes a contract-validated brief, renders the
document and composes the paginated PDF with a headless browser.

The validated brief JSON is written alongside the PDF so the structured
intermediate stays inspectable.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.output, "output", "o", "", "Output PDF path (default: <session>.pdf)")
	f.StringVar(&generateFlags.briefPath, "brief", "", "Brief JSON path (default: <session>.brief.json)")
	f.StringVar(&generateFlags.renderer, "renderer", "", "Renderer override: two-stage or legacy")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sessionPath := args[0]

	if generateFlags.renderer != "" {
		cfg.Renderer = generateFlags.renderer
	}

	outPath := generateFlags.output
	if outPath == "" {
		outPath = stripExt(sessionPath) + ".pdf"
	}
	briefPath := generateFlags.briefPath
	if briefPath == "" {
		briefPath = stripExt(sessionPath) + ".brief.json"
	}

	sess, err := session.LoadFile(sessionPath)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context(), sess)
	if err != nil {
		return err
	}

	if err := os.WriteFile(briefPath, res.BriefJSON, 0o644); err != nil {
		return fmt.Errorf("write brief json: %w", err)
	}
	if err := os.WriteFile(outPath, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, format.BriefSummary(res.Brief, format.ASCII))
	fmt.Fprintf(out, "\nBrief: %s\nPDF:   %s (%d bytes)\n", briefPath, outPath, len(res.PDF))
	return nil
}

func stripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
