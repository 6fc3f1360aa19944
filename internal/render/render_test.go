package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"debrief/internal/brief"
	"debrief/internal/event"
	"debrief/internal/fault"
)

func sampleBrief() *brief.Brief {
	conf := 78.0
	return &brief.Brief{
		BottomLine:       "Proceed with the pilot.",
		Opportunity:      "Underserved segment access.",
		Recommendation:   "Fund a two-region pilot with a 90-day window.",
		Requirement:      "Named owner before launch.",
		ExecutiveSummary: "The panel converged on a limited pilot as the fastest way to test demand while capping exposure.",
		Rationale:        []string{"Demand verified twice.", "Cost objection rebutted."},
		CriticalRisks: []brief.Risk{
			{Description: "Pilot underperforms", Impact: 4, Probability: 2, Mitigation: "Kill criteria at day 45"},
			{Description: "Key hire slips", Impact: 3, Probability: 3, Mitigation: "Open requisition now"},
			{Description: "Account churn", Impact: 2, Probability: 2, Mitigation: "Ring-fence support"},
		},
		ImmediateActions:   []string{"Name the owner.", "Approve budget.", "Book day-45 review."},
		CriticalConditions: []string{"DPA signed before data moves."},
		ConfidenceLevel:    &conf,
		QuotableInsights:   []string{"A pilot that cannot fail teaches nothing.", "Attention is the real spend."},
		RiskMatrix: &brief.RiskMatrix{
			HighImpactHighProbability: []string{"Key hire slips"},
			HighImpactLowProbability:  []string{"Pilot underperforms"},
			LowImpactLowProbability:   []string{"Account churn"},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func TestTwoStage_RenderedDocumentPassesStructureCheck(t *testing.T) {
	r := &TwoStage{Now: fixedClock}
	html, err := r.Render(context.Background(), sampleBrief(), event.Extracted{
		Question: "Should we run the pilot?", Confidence: 80,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if errs := CheckStructure(html); len(errs) != 0 {
		t.Errorf("rendered document fails its own structure check: %v", errs)
	}
}

func TestTwoStage_VisualContract(t *testing.T) {
	r := &TwoStage{Now: fixedClock}
	html, err := r.Render(context.Background(), sampleBrief(), event.Extracted{Question: "Q?"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"EXECUTIVE BRIEF",
		"March 14, 2026",
		"page-break-inside: avoid",
		"Georgia",
		"sans-serif",
		"Proceed with the pilot.",
		"Kill criteria at day 45",
		"High Impact / High Probability",
		"DPA signed before data moves.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestTwoStage_OptionalSectionsOmitted(t *testing.T) {
	b := sampleBrief()
	b.RiskMatrix = nil
	b.QuotableInsights = nil
	b.CriticalConditions = nil
	r := &TwoStage{Now: fixedClock}
	html, err := r.Render(context.Background(), b, event.Extracted{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, absent := range []string{"Risk Matrix", "Quotable Insights", "Critical Conditions"} {
		if strings.Contains(html, absent) {
			t.Errorf("document should omit empty section %q", absent)
		}
	}
	if errs := CheckStructure(html); len(errs) != 0 {
		t.Errorf("structure check: %v", errs)
	}
}

func TestTwoStage_EscapesContent(t *testing.T) {
	b := sampleBrief()
	b.BottomLine = `<script>alert("x")</script>`
	r := &TwoStage{Now: fixedClock}
	html, err := r.Render(context.Background(), b, event.Extracted{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("brief content must be HTML-escaped")
	}
}

type stubGen struct {
	out string
	err error
}

func (g *stubGen) Chat(ctx context.Context, system, user string) (string, error) {
	return g.out, g.err
}
func (g *stubGen) Model() string { return "stub" }

func TestLegacy_StripsFences(t *testing.T) {
	doc := "<!DOCTYPE html><html><head><style>.b{page-break-inside: avoid}</style></head>" +
		"<body><h1>Executive Summary</h1></body></html>"
	r := &Legacy{Gen: &stubGen{out: "```html\n" + doc + "\n```"}}
	html, err := r.Render(context.Background(), nil, event.Extracted{Question: "Q"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "```") {
		t.Error("fences should be stripped")
	}
	if errs := CheckStructure(html); len(errs) != 0 {
		t.Errorf("structure check: %v", errs)
	}
}

func TestLegacy_GenerationFailureIsRenderError(t *testing.T) {
	r := &Legacy{Gen: &stubGen{err: errors.New("service down")}}
	_, err := r.Render(context.Background(), nil, event.Extracted{})
	var re *fault.RenderError
	if !errors.As(err, &re) {
		t.Fatalf("err = %T, want *fault.RenderError", err)
	}
}

func TestCheckStructure(t *testing.T) {
	cases := []struct {
		name string
		html string
		want []string // substrings expected among the errors; empty = valid
	}{
		{
			"valid minimal",
			`<!DOCTYPE html><html><head><style>div{page-break-inside: avoid}</style></head><body><h2>Recommendation</h2></body></html>`,
			nil,
		},
		{
			"missing doctype",
			`<html><head><style>div{page-break-inside: avoid}</style></head><body>Recommendation</body></html>`,
			[]string{"doctype"},
		},
		{
			"unbalanced body",
			`<!DOCTYPE html><html><head><style>a{page-break-inside: avoid}</style></head><body>Recommendation</html>`,
			[]string{"unbalanced <body>"},
		},
		{
			"no page-break markers",
			`<!DOCTYPE html><html><head><style>div{color:red}</style></head><body>Recommendation</body></html>`,
			[]string{"page-break-inside"},
		},
		{
			"no sections",
			`<!DOCTYPE html><html><head><style>div{page-break-inside: avoid}</style></head><body>hello</body></html>`,
			[]string{"no recognizable brief section"},
		},
		{
			"no styling",
			`<!DOCTYPE html><html><head></head><body>Recommendation</body></html>`,
			[]string{"page-break-inside", "no styling"},
		},
		{
			"everything wrong",
			`hello world`,
			[]string{"doctype", "<html", "<head", "<body", "page-break-inside", "section", "styling"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := CheckStructure(tc.html)
			if len(tc.want) == 0 {
				if len(errs) != 0 {
					t.Fatalf("want valid, got %v", errs)
				}
				return
			}
			for _, w := range tc.want {
				found := false
				for _, e := range errs {
					if strings.Contains(e, w) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("errors %v missing expected %q", errs, w)
				}
			}
		})
	}
}
