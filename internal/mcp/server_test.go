package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"debrief/internal/brief"
	"debrief/internal/config"
	"debrief/internal/pipeline"
	"debrief/internal/render"
	"debrief/internal/retry"
)

type stubGen struct{ out string }

func (g *stubGen) Chat(ctx context.Context, system, user string) (string, error) {
	return g.out, nil
}
func (g *stubGen) Model() string { return "stub" }

type stubCompositor struct{ pdf []byte }

func (c *stubCompositor) ToPDF(ctx context.Context, markup string) ([]byte, error) {
	return c.pdf, nil
}

func validBriefJSON(t *testing.T) string {
	t.Helper()
	conf := 80.0
	b := &brief.Brief{
		BottomLine:       "Proceed.",
		Opportunity:      "Market access.",
		Recommendation:   "Fund the pilot with a fixed evaluation window.",
		Requirement:      "Named owner.",
		ExecutiveSummary: strings.Repeat("The panel converged on a limited pilot. ", 2),
		Rationale:        []string{"Verified demand.", "Rebutted cost objection."},
		CriticalRisks: []brief.Risk{
			{Description: "r1", Impact: 4, Probability: 2, Mitigation: "m1"},
			{Description: "r2", Impact: 3, Probability: 3, Mitigation: "m2"},
			{Description: "r3", Impact: 2, Probability: 2, Mitigation: "m3"},
		},
		ImmediateActions: []string{"a1", "a2", "a3"},
		ConfidenceLevel:  &conf,
		QuotableInsights: []string{"q1", "q2"},
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func writeSession(t *testing.T) string {
	t.Helper()
	body := `topic: "Expand to LATAM?"
participants:
  - moderator
  - analyst
events:
  - sequence_id: 1
    event_type: final_ruling
    payload:
      ruling: expand via a pilot
      confidence: 0.8
`
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testServer(t *testing.T, briefJSON string) *Server {
	t.Helper()
	s := NewServer(config.Default())
	s.newPipeline = func(config.Config) (*pipeline.Pipeline, error) {
		return &pipeline.Pipeline{
			Synth: brief.NewSynthesizer(&stubGen{out: briefJSON},
				brief.WithPolicy(retry.Policy{MaxRetries: 1, InitialDelay: time.Microsecond})),
			Renderer:   &render.TwoStage{},
			Compositor: &stubCompositor{pdf: []byte("%PDF-fake")},
		}, nil
	}
	return s
}

func TestHandleGenerateBrief(t *testing.T) {
	s := testServer(t, validBriefJSON(t))
	pdfPath := filepath.Join(t.TempDir(), "out.pdf")

	_, out, err := s.handleGenerateBrief(context.Background(), nil, generateBriefInput{
		SessionPath: writeSession(t),
		PDFPath:     pdfPath,
	})
	if err != nil {
		t.Fatalf("handleGenerateBrief: %v", err)
	}
	if out.BottomLine != "Proceed." {
		t.Errorf("bottom line = %q", out.BottomLine)
	}
	if out.PDFBytes == 0 {
		t.Error("missing PDF size")
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if string(data) != "%PDF-fake" {
		t.Errorf("pdf content = %q", data)
	}
}

func TestHandleGenerateBrief_WritesBriefJSON(t *testing.T) {
	s := testServer(t, validBriefJSON(t))
	dir := t.TempDir()
	briefPath := filepath.Join(dir, "brief.json")

	_, _, err := s.handleGenerateBrief(context.Background(), nil, generateBriefInput{
		SessionPath: writeSession(t),
		PDFPath:     filepath.Join(dir, "out.pdf"),
		BriefPath:   briefPath,
	})
	if err != nil {
		t.Fatalf("handleGenerateBrief: %v", err)
	}
	data, err := os.ReadFile(briefPath)
	if err != nil {
		t.Fatalf("read brief json: %v", err)
	}
	var b brief.Brief
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("brief json not parseable: %v", err)
	}
	if b.BottomLine != "Proceed." {
		t.Errorf("bottom line = %q", b.BottomLine)
	}
}

func TestHandleGenerateBrief_MissingSession(t *testing.T) {
	s := testServer(t, validBriefJSON(t))
	_, _, err := s.handleGenerateBrief(context.Background(), nil, generateBriefInput{
		SessionPath: filepath.Join(t.TempDir(), "absent.yaml"),
		PDFPath:     filepath.Join(t.TempDir(), "out.pdf"),
	})
	if err == nil {
		t.Error("missing session file should fail")
	}
}

func TestHandleExtractNarrative(t *testing.T) {
	s := NewServer(config.Default())
	_, out, err := s.handleExtractNarrative(context.Background(), nil, extractNarrativeInput{
		SessionPath: writeSession(t),
	})
	if err != nil {
		t.Fatalf("handleExtractNarrative: %v", err)
	}
	if out.Question != "Expand to LATAM?" {
		t.Errorf("question = %q, want topic back-fill", out.Question)
	}
	if out.Confidence != 80 {
		t.Errorf("confidence = %v, want normalized 80", out.Confidence)
	}
	if !strings.Contains(out.Narrative, "expand via a pilot") {
		t.Errorf("narrative missing ruling:\n%s", out.Narrative)
	}
	if out.Events != 1 {
		t.Errorf("events = %d", out.Events)
	}
}

func TestHandleValidateBrief(t *testing.T) {
	s := NewServer(config.Default())

	_, out, err := s.handleValidateBrief(context.Background(), nil, validateBriefInput{
		BriefJSON: validBriefJSON(t),
	})
	if err != nil {
		t.Fatalf("handleValidateBrief: %v", err)
	}
	if !out.Valid {
		t.Fatalf("valid brief rejected: %v", out.Violations)
	}
	if !strings.Contains(out.Summary, "Proceed.") {
		t.Errorf("summary missing bottom line:\n%s", out.Summary)
	}
}

func TestHandleValidateBrief_CollectsViolations(t *testing.T) {
	s := NewServer(config.Default())

	_, out, err := s.handleValidateBrief(context.Background(), nil, validateBriefInput{
		BriefJSON: `{"bottom_line":"only"}`,
	})
	if err != nil {
		t.Fatalf("handleValidateBrief: %v", err)
	}
	if out.Valid {
		t.Fatal("incomplete brief accepted")
	}
	if len(out.Violations) < 2 {
		t.Errorf("expected every violation reported, got %v", out.Violations)
	}
}

func TestToolRegistration(t *testing.T) {
	s := NewServer(config.Default())
	if s.MCPServer == nil {
		t.Fatal("MCP server not constructed")
	}
}
