// Package pipeline sequences extraction, synthesis, rendering,
// structure checking and PDF composition into one call, and folds any
// stage failure into a single stage-qualified error.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"debrief/internal/brief"
	"debrief/internal/event"
	"debrief/internal/fault"
	"debrief/internal/render"
	"debrief/internal/session"
)

// Compositor is the slice of the PDF stage the pipeline needs.
// *pdf.Compositor satisfies it.
type Compositor interface {
	ToPDF(ctx context.Context, markup string) ([]byte, error)
}

// Stage names the pipeline's states. A run walks them in order; any
// failure moves it to StageFailed and aborts.
type Stage string

const (
	StageInit         Stage = "init"
	StageExtracting   Stage = "extracting"
	StageSynthesizing Stage = "synthesizing"
	StageRendering    Stage = "rendering"
	StageChecking     Stage = "checking"
	StageCompositing  Stage = "compositing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// Result is one successful run's output: the paginated document plus
// the inspectable brief intermediate.
type Result struct {
	Brief     *brief.Brief
	BriefJSON []byte
	HTML      string
	PDF       []byte
}

// Pipeline wires the stages together. Each Run is independent; no
// state is shared across invocations, so one Pipeline may serve
// concurrent runs, each owning its own browser process.
type Pipeline struct {
	Synth      *brief.Synthesizer
	Renderer   render.Renderer
	Compositor Compositor
	Logger     *slog.Logger

	// SynthTimeout bounds the synthesis stage including all retries.
	// Zero means the generation client's own transport timeout is the
	// only bound.
	SynthTimeout time.Duration
}

// Run executes the full pipeline over one session. Every stage fully
// completes before the next starts. The returned error carries a
// stage-qualified prefix; the typed cause is reachable via errors.As.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	stage := StageInit
	advance := func(next Stage) {
		stage = next
		logger.InfoContext(ctx, "pipeline stage", "stage", string(stage), "topic_present", sess.Topic != "")
	}
	fail := func(err error) error {
		logger.ErrorContext(ctx, "pipeline failed",
			"stage", string(stage), "events", len(sess.Events), "err", err)
		stage = StageFailed
		return err
	}

	advance(StageExtracting)
	ex := event.Extract(sess.Events)
	if ex.Question == "" {
		ex.Question = sess.Topic
	}

	advance(StageSynthesizing)
	synthCtx := ctx
	if p.SynthTimeout > 0 {
		var cancel context.CancelFunc
		synthCtx, cancel = context.WithTimeout(ctx, p.SynthTimeout)
		defer cancel()
	}
	b, err := p.Synth.Synthesize(synthCtx, ex)
	if err != nil {
		return nil, fail(fmt.Errorf("brief synthesis failed: %w", err))
	}

	briefJSON, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fail(fmt.Errorf("brief synthesis failed: encode brief: %w", err))
	}

	advance(StageRendering)
	html, err := p.Renderer.Render(ctx, b, ex)
	if err != nil {
		return nil, fail(fmt.Errorf("document rendering failed: %w", err))
	}

	advance(StageChecking)
	if problems := render.CheckStructure(html); len(problems) > 0 {
		err := &fault.ValidationError{Op: "check document structure", Violations: problems}
		return nil, fail(fmt.Errorf("document structure check failed: %w", err))
	}

	advance(StageCompositing)
	pdfBytes, err := p.Compositor.ToPDF(ctx, html)
	if err != nil {
		return nil, fail(fmt.Errorf("pdf composition failed: %w", err))
	}

	advance(StageDone)
	return &Result{Brief: b, BriefJSON: briefJSON, HTML: html, PDF: pdfBytes}, nil
}
