package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"debrief/internal/brief"
	"debrief/internal/event"
	"debrief/internal/fault"
	"debrief/internal/format"
	"debrief/internal/logging"
	"debrief/internal/pdf"
	"debrief/internal/render"
)

var renderFlags struct {
	output   string
	question string
	toPDF    bool
}

var renderCmd = &cobra.Command{
	Use:   "render <brief-json>",
	Short: "Render a validated brief to HTML, optionally composing the PDF",
	Long: `Render takes an already-synthesized brief JSON file, validates it, and
renders the document template. With --pdf the rendered markup is also
composed into a paginated PDF. The structure check runs either way.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.output, "output", "o", "", "Output path (default: <brief>.html or <brief>.pdf)")
	f.StringVar(&renderFlags.question, "question", "", "Decision question shown in the document header")
	f.BoolVar(&renderFlags.toPDF, "pdf", false, "Compose a PDF instead of writing HTML")
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read brief: %w", err)
	}

	res := brief.Validate(data)
	if !res.Valid {
		fmt.Fprintln(cmd.OutOrStdout(), format.ViolationTable(res.Errors, format.ASCII))
		return fmt.Errorf("brief failed validation, not rendering")
	}

	ex := event.Extracted{Question: renderFlags.question}
	if res.Brief.ConfidenceLevel != nil {
		ex.Confidence = *res.Brief.ConfidenceLevel
	}

	renderer := &render.TwoStage{}
	html, err := renderer.Render(cmd.Context(), res.Brief, ex)
	if err != nil {
		return err
	}
	if problems := render.CheckStructure(html); len(problems) > 0 {
		return &fault.ValidationError{Op: "check document structure", Violations: problems}
	}

	outPath := renderFlags.output
	if renderFlags.toPDF {
		if outPath == "" {
			outPath = stripExt(args[0]) + ".pdf"
		}
		comp := &pdf.Compositor{Timeout: cfg.ComposeTimeout(), Logger: logging.New("pdf")}
		pdfBytes, err := comp.ToPDF(cmd.Context(), html)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PDF: %s (%d bytes)\n", outPath, len(pdfBytes))
		return nil
	}

	if outPath == "" {
		outPath = stripExt(args[0]) + ".html"
	}
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "HTML: %s\n", outPath)
	return nil
}
