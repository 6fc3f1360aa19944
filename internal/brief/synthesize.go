package brief

import (
	"context"
	"io"
	"log/slog"

	"debrief/internal/event"
	"debrief/internal/fault"
	"debrief/internal/retry"
)

// Generator is the slice of the generation client the synthesizer
// needs. *genai.Client satisfies it.
type Generator interface {
	Chat(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Synthesizer obtains a validated Brief from the generation service.
// Parse and validation failures are retried exactly like transport
// failures: every attempt is a brand-new generation call, never a
// repair of a prior response.
type Synthesizer struct {
	gen    Generator
	policy retry.Policy
	logger *slog.Logger
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithPolicy overrides the default retry policy.
func WithPolicy(p retry.Policy) SynthesizerOption {
	return func(s *Synthesizer) { s.policy = p }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) { s.logger = l }
}

// NewSynthesizer wires a Synthesizer to a generation client.
func NewSynthesizer(gen Generator, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		gen:    gen,
		policy: retry.DefaultPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize runs the full generate→parse→validate loop and returns a
// Brief that passed every contract check. On exhaustion the last
// error is returned: a *fault.GenerationError for transport failures
// or a *fault.ValidationError carrying the complete violation list.
func (s *Synthesizer) Synthesize(ctx context.Context, ex event.Extracted) (*Brief, error) {
	userPrompt, err := buildUserPrompt(ex)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "synthesizing brief",
		"model", s.gen.Model(),
		"question_present", ex.Question != "",
		"narrative_chars", len(ex.Narrative),
		"max_retries", s.policy.MaxRetries)

	attempt := 0
	b, err := retry.DoValidated(ctx, s.policy,
		func(ctx context.Context) (string, error) {
			attempt++
			raw, err := s.gen.Chat(ctx, systemPrompt, userPrompt)
			if err != nil {
				s.logger.WarnContext(ctx, "generation attempt failed",
					"attempt", attempt, "err", err)
			}
			return raw, err
		},
		func(raw string) (*Brief, error) {
			res := Validate([]byte(raw))
			if !res.Valid {
				s.logger.WarnContext(ctx, "generated brief violates contract",
					"attempt", attempt, "violations", len(res.Errors))
				return nil, &fault.ValidationError{Op: "validate brief", Violations: res.Errors}
			}
			return res.Brief, nil
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "brief synthesized",
		"attempts", attempt,
		"risks", len(b.CriticalRisks),
		"actions", len(b.ImmediateActions))
	return b, nil
}
