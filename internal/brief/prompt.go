package brief

import (
	"bytes"
	"fmt"
	"text/template"

	"debrief/internal/event"
)

// systemPrompt pins the output to a bare JSON object. Fence stripping
// still runs on the response because models ignore this often enough.
const systemPrompt = `You are an executive communications analyst. You turn multi-agent ` +
	`deliberation transcripts into board-ready decision briefs.

Respond with a single JSON object and nothing else. No prose before or after. ` +
	`No markdown code fences. Every string value must be complete sentences in ` +
	`plain business English.`

const userPromptTmpl = `Produce an executive decision brief for the deliberation below.

QUESTION UNDER DEBATE:
{{.Question}}

PANEL CONFIDENCE: {{printf "%.0f" .Confidence}}/100

DELIBERATION NARRATIVE:
{{.Narrative}}

OUTPUT CONTRACT — a single JSON object with exactly these fields:
- bottom_line: one-sentence decision call.
- opportunity: what is to be gained.
- recommendation: the recommended course of action ({{.MinRecommend}}+ characters).
- requirement: what must be true or in place to proceed.
- executive_summary: standalone summary ({{.MinSummary}}+ characters).
- rationale: array of {{.MinRationale}}-{{.MaxRationale}} strings, each one supporting reason.
- critical_risks: array of {{.MinRisks}}-{{.MaxRisks}} objects {description, impact, probability, mitigation};
  impact and probability are integers 1-5.
- immediate_actions: array of {{.MinActions}}-{{.MaxActions}} strings.
- critical_conditions: array of 0-{{.MaxConditions}} strings; deal-breaker conditions only.
- confidence_level: optional number 0-100.
- quotable_insights: array of {{.MinInsights}}-{{.MaxInsights}} short quotable strings.
- swot: optional object {strengths, weaknesses, opportunities, threats}, each an array of strings.
- risk_matrix: optional object with keys high_impact_high_probability,
  high_impact_low_probability, low_impact_high_probability, low_impact_low_probability.
  If you include it, the four arrays together must contain exactly one entry per
  critical risk — same count as critical_risks, no risk in two quadrants.
- timeline: optional array of {phase, duration, activities, deliverables, dependencies}.

WORKED EXAMPLE (structure only — do not copy the content):
{{.Example}}`

var userTemplate = template.Must(template.New("brief-user").Parse(userPromptTmpl))

// exampleBrief is the worked example embedded in every prompt. It
// deliberately satisfies the contract so the model sees the bounds in
// action (3 risks, matrix partitioning all 3).
const exampleBrief = `{
  "bottom_line": "Proceed with the pilot program in Q3.",
  "opportunity": "First-mover access to an underserved mid-market segment.",
  "recommendation": "Fund a two-region pilot with a fixed 90-day evaluation window.",
  "requirement": "A dedicated owner and a signed data-processing agreement before launch.",
  "executive_summary": "The panel converged on a limited pilot as the fastest way to test demand while capping downside exposure to one quarter of budget.",
  "rationale": [
    "Demand signals were verified by two independent research findings.",
    "The main cost objection was rebutted with current vendor pricing."
  ],
  "critical_risks": [
    {"description": "Pilot regions underperform the model", "impact": 4, "probability": 2, "mitigation": "Pre-agree kill criteria at day 45"},
    {"description": "Key hire not closed before launch", "impact": 3, "probability": 3, "mitigation": "Open the requisition this week"},
    {"description": "Churn from existing accounts during focus shift", "impact": 2, "probability": 2, "mitigation": "Ring-fence the support rotation"}
  ],
  "immediate_actions": [
    "Name the pilot owner by Friday.",
    "Approve the 90-day budget envelope.",
    "Schedule the day-45 review now."
  ],
  "critical_conditions": ["Data-processing agreement signed before any customer data moves."],
  "confidence_level": 78,
  "quotable_insights": [
    "A pilot that cannot fail teaches nothing.",
    "The risk is not the spend, it is the attention."
  ],
  "risk_matrix": {
    "high_impact_high_probability": ["Key hire not closed before launch"],
    "high_impact_low_probability": ["Pilot regions underperform the model"],
    "low_impact_high_probability": [],
    "low_impact_low_probability": ["Churn from existing accounts during focus shift"]
  }
}`

type promptParams struct {
	Question   string
	Confidence float64
	Narrative  string
	Example    string

	MinRecommend, MinSummary              int
	MinRationale, MaxRationale            int
	MinRisks, MaxRisks                    int
	MinActions, MaxActions, MaxConditions int
	MinInsights, MaxInsights              int
}

// buildUserPrompt renders the user message for one synthesis attempt.
// The same prompt is reused across retry attempts; regeneration relies
// on sampling, not on prompt mutation.
func buildUserPrompt(ex event.Extracted) (string, error) {
	question := ex.Question
	if question == "" {
		question = "(not recorded)"
	}
	narrative := ex.Narrative
	if narrative == "" {
		narrative = "(no narrative could be extracted from the session)"
	}

	params := promptParams{
		Question:      question,
		Confidence:    ex.Confidence,
		Narrative:     narrative,
		Example:       exampleBrief,
		MinRecommend:  minRecommendChars,
		MinSummary:    minSummaryChars,
		MinRationale:  minRationale,
		MaxRationale:  maxRationale,
		MinRisks:      minRisks,
		MaxRisks:      maxRisks,
		MinActions:    minActions,
		MaxActions:    maxActions,
		MaxConditions: maxConditions,
		MinInsights:   minInsights,
		MaxInsights:   maxInsights,
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, &params); err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}
	return buf.String(), nil
}
