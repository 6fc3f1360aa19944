package render

import (
	"context"
	"strings"

	"debrief/internal/brief"
	"debrief/internal/event"
	"debrief/internal/fault"
	"debrief/internal/genai"
)

const legacySystemPrompt = `You are an executive communications designer. Produce a complete,
self-contained HTML document (doctype, html, head with an inline <style> block, body) for a
printed executive decision brief. Use serif headings, sans-serif body text, a navy-and-gold
palette, and set page-break-inside: avoid on every content block so a PDF converter never
slices a section across pages. Include a header reading "EXECUTIVE BRIEF" with the date, an
executive summary, a recommendation, a risk table and an immediate-actions list.
Respond with the HTML only. No markdown fences, no commentary.`

// Legacy asks the generation service to go straight from session
// content to final markup in one call, with no independent JSON
// validation in between. It trades contract safety for one fewer
// round trip and predates the two-stage path.
//
// Deprecated: use TwoStage. Legacy remains only for parity with
// historical documents.
type Legacy struct {
	Gen brief.Generator
}

// Render performs the single-stage generation call. The ignored brief
// argument keeps Legacy behind the shared Renderer interface.
func (r *Legacy) Render(ctx context.Context, _ *brief.Brief, ex event.Extracted) (string, error) {
	var sb strings.Builder
	if ex.Question != "" {
		sb.WriteString("QUESTION UNDER DEBATE:\n")
		sb.WriteString(ex.Question)
		sb.WriteString("\n\n")
	}
	sb.WriteString("DELIBERATION NARRATIVE:\n")
	if ex.Narrative == "" {
		sb.WriteString("(no narrative could be extracted from the session)")
	} else {
		sb.WriteString(ex.Narrative)
	}

	out, err := r.Gen.Chat(ctx, legacySystemPrompt, sb.String())
	if err != nil {
		return "", &fault.RenderError{Op: "render document (legacy)", Err: err}
	}
	return string(genai.CleanJSON([]byte(out))), nil
}
