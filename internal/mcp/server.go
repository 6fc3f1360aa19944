// Package mcp exposes the brief pipeline as MCP tools so agent hosts
// can drive generation, extraction and validation over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"debrief/internal/brief"
	"debrief/internal/config"
	"debrief/internal/event"
	"debrief/internal/format"
	"debrief/internal/logging"
	"debrief/internal/pipeline"
	"debrief/internal/session"
)

// Server wraps the MCP SDK server around the brief pipeline.
type Server struct {
	MCPServer *sdkmcp.Server

	cfg config.Config

	// newPipeline is a seam for tests; defaults to pipeline.New.
	newPipeline func(config.Config) (*pipeline.Pipeline, error)
}

// NewServer creates an MCP server with brief-generation tools.
func NewServer(cfg config.Config) *Server {
	s := &Server{cfg: cfg, newPipeline: pipeline.New}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "debrief", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "generate_brief",
		Description: "Run the full pipeline on a session file: extract the narrative, synthesize a validated executive brief, and compose the PDF.",
	}, s.handleGenerateBrief)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "extract_narrative",
		Description: "Extract the canonical narrative from a session file without calling the generation service.",
	}, s.handleExtractNarrative)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "validate_brief",
		Description: "Validate a brief JSON document against the full contract. Returns every violation, not just the first.",
	}, s.handleValidateBrief)
}

// --- Tool input/output types ---

type generateBriefInput struct {
	SessionPath string `json:"session_path" jsonschema:"path to the session file (YAML or JSON)"`
	PDFPath     string `json:"pdf_path" jsonschema:"where to write the composed PDF"`
	BriefPath   string `json:"brief_path,omitempty" jsonschema:"optional path for the inspectable brief JSON"`
}

type generateBriefOutput struct {
	PDFPath    string `json:"pdf_path"`
	PDFBytes   int    `json:"pdf_bytes"`
	BriefJSON  string `json:"brief_json"`
	BottomLine string `json:"bottom_line"`
}

type extractNarrativeInput struct {
	SessionPath string `json:"session_path" jsonschema:"path to the session file (YAML or JSON)"`
}

type extractNarrativeOutput struct {
	Question   string  `json:"question"`
	Confidence float64 `json:"confidence"`
	Narrative  string  `json:"narrative"`
	Events     int     `json:"events"`
}

type validateBriefInput struct {
	BriefJSON string `json:"brief_json" jsonschema:"brief document as a JSON string"`
}

type validateBriefOutput struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

// --- Handlers ---

func (s *Server) handleGenerateBrief(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateBriefInput) (*sdkmcp.CallToolResult, generateBriefOutput, error) {
	logger := logging.New("mcp")

	sess, err := session.LoadFile(input.SessionPath)
	if err != nil {
		return nil, generateBriefOutput{}, err
	}

	p, err := s.newPipeline(s.cfg)
	if err != nil {
		return nil, generateBriefOutput{}, err
	}

	res, err := p.Run(ctx, sess)
	if err != nil {
		return nil, generateBriefOutput{}, err
	}

	if err := os.WriteFile(input.PDFPath, res.PDF, 0o644); err != nil {
		return nil, generateBriefOutput{}, fmt.Errorf("write pdf: %w", err)
	}
	if input.BriefPath != "" {
		if err := os.WriteFile(input.BriefPath, res.BriefJSON, 0o644); err != nil {
			return nil, generateBriefOutput{}, fmt.Errorf("write brief json: %w", err)
		}
	}

	logger.Info("brief generated", "session", input.SessionPath, "pdf", input.PDFPath, "bytes", len(res.PDF))

	return nil, generateBriefOutput{
		PDFPath:    input.PDFPath,
		PDFBytes:   len(res.PDF),
		BriefJSON:  string(res.BriefJSON),
		BottomLine: res.Brief.BottomLine,
	}, nil
}

func (s *Server) handleExtractNarrative(ctx context.Context, _ *sdkmcp.CallToolRequest, input extractNarrativeInput) (*sdkmcp.CallToolResult, extractNarrativeOutput, error) {
	sess, err := session.LoadFile(input.SessionPath)
	if err != nil {
		return nil, extractNarrativeOutput{}, err
	}

	ex := event.Extract(sess.Events)
	if ex.Question == "" {
		ex.Question = sess.Topic
	}

	return nil, extractNarrativeOutput{
		Question:   ex.Question,
		Confidence: ex.Confidence,
		Narrative:  ex.Narrative,
		Events:     len(sess.Events),
	}, nil
}

func (s *Server) handleValidateBrief(ctx context.Context, _ *sdkmcp.CallToolRequest, input validateBriefInput) (*sdkmcp.CallToolResult, validateBriefOutput, error) {
	res := brief.Validate([]byte(input.BriefJSON))
	if !res.Valid {
		return nil, validateBriefOutput{Valid: false, Violations: res.Errors}, nil
	}
	return nil, validateBriefOutput{
		Valid:   true,
		Summary: format.BriefSummary(res.Brief, format.Markdown),
	}, nil
}
