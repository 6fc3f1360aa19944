package pipeline

import (
	"time"

	"debrief/internal/brief"
	"debrief/internal/config"
	"debrief/internal/genai"
	"debrief/internal/logging"
	"debrief/internal/pdf"
	"debrief/internal/render"
	"debrief/internal/retry"
)

// New assembles a ready-to-run Pipeline from the effective
// configuration.
func New(cfg config.Config) (*Pipeline, error) {
	opts := []genai.Option{
		genai.WithModel(cfg.Model),
		genai.WithTemperature(cfg.Temperature),
		genai.WithJSONMode(cfg.JSONMode),
		genai.WithTimeout(cfg.RequestTimeout()),
		genai.WithLogger(logging.New("genai")),
	}
	if cfg.Referer != "" {
		opts = append(opts, genai.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, genai.WithHeader("X-Title", cfg.Title))
	}

	client, err := genai.New(cfg.BaseURL, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	synth := brief.NewSynthesizer(client,
		brief.WithPolicy(retry.Policy{MaxRetries: cfg.MaxRetries, InitialDelay: time.Second}),
		brief.WithLogger(logging.New("synthesizer")),
	)

	var renderer render.Renderer = &render.TwoStage{}
	if cfg.Renderer == "legacy" {
		renderer = &render.Legacy{Gen: client}
	}

	return &Pipeline{
		Synth:    synth,
		Renderer: renderer,
		Compositor: &pdf.Compositor{
			Timeout: cfg.ComposeTimeout(),
			Logger:  logging.New("pdf"),
		},
		Logger:       logging.New("pipeline"),
		SynthTimeout: cfg.SynthTimeout(),
	}, nil
}
