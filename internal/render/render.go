// Package render turns a validated brief into a self-contained styled
// HTML document and checks the structural contract the PDF compositor
// depends on.
package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"debrief/internal/brief"
	"debrief/internal/event"
	"debrief/internal/fault"
)

//go:embed document.tmpl
var documentTmpl string

var docTemplate = template.Must(
	template.New("document").Funcs(template.FuncMap{
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
		"join": func(items []string) string { return strings.Join(items, ", ") },
	}).Parse(documentTmpl))

// Renderer produces the final markup for one pipeline run. Two
// implementations exist: TwoStage (default, renders from a validated
// brief) and Legacy (deprecated single-stage generation).
type Renderer interface {
	Render(ctx context.Context, b *brief.Brief, ex event.Extracted) (string, error)
}

// TwoStage renders the document from an already-validated Brief. It is
// deterministic: no generation call, so the only failure mode is a
// template execution error.
type TwoStage struct {
	// Now is overridable for reproducible output in tests.
	Now func() time.Time
}

type docData struct {
	Brief       *brief.Brief
	Question    string
	Confidence  float64
	GeneratedAt string
}

// Render executes the document template over the brief and the
// extracted session content.
func (r *TwoStage) Render(ctx context.Context, b *brief.Brief, ex event.Extracted) (string, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	data := docData{
		Brief:       b,
		Question:    ex.Question,
		Confidence:  ex.Confidence,
		GeneratedAt: now().Format("January 2, 2006"),
	}

	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, &data); err != nil {
		return "", &fault.RenderError{Op: "render document", Err: fmt.Errorf("execute template: %w", err)}
	}
	return buf.String(), nil
}
