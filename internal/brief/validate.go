package brief

import (
	"fmt"

	"debrief/internal/genai"
)

// Contract bounds for the brief's list fields and minimum lengths.
const (
	minRationale      = 2
	maxRationale      = 5
	minRisks          = 3
	maxRisks          = 10
	minActions        = 3
	maxActions        = 10
	maxConditions     = 5
	minInsights       = 2
	maxInsights       = 5
	minSummaryChars   = 50
	minRecommendChars = 20
)

// Result is the outcome of validating raw generated output. When Valid
// is false, Errors holds every violation found, not just the first.
type Result struct {
	Valid  bool
	Errors []string
	Brief  *Brief
}

// Validate parses raw JSON (markdown fences tolerated) and checks it
// against the full brief contract: schema/range checks first, then
// business rules. All violations are collected in one pass so a
// retrying caller can log the complete picture.
func Validate(raw []byte) Result {
	b, err := genai.ParseJSON[Brief](raw)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	errs := Check(b)
	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Valid: true, Brief: b}
}

// Check runs the contract rules against an already-parsed brief and
// returns every violation. An empty result means the brief is valid.
// Check is idempotent: re-checking valid data stays valid.
func Check(b *Brief) []string {
	var errs []string

	requireText := func(field, value string) {
		if value == "" {
			errs = append(errs, field+": required, got empty")
		}
	}
	requireText("bottom_line", b.BottomLine)
	requireText("opportunity", b.Opportunity)
	requireText("recommendation", b.Recommendation)
	requireText("requirement", b.Requirement)
	requireText("executive_summary", b.ExecutiveSummary)

	if n := len(b.ExecutiveSummary); n > 0 && n < minSummaryChars {
		errs = append(errs, fmt.Sprintf("executive_summary: %d chars, need at least %d", n, minSummaryChars))
	}
	if n := len(b.Recommendation); n > 0 && n < minRecommendChars {
		errs = append(errs, fmt.Sprintf("recommendation: %d chars, need at least %d", n, minRecommendChars))
	}

	checkCount := func(field string, n, min, max int) {
		if n < min || n > max {
			errs = append(errs, fmt.Sprintf("%s: %d entries, need %d..%d", field, n, min, max))
		}
	}
	checkCount("rationale", len(b.Rationale), minRationale, maxRationale)
	checkCount("critical_risks", len(b.CriticalRisks), minRisks, maxRisks)
	checkCount("immediate_actions", len(b.ImmediateActions), minActions, maxActions)
	checkCount("quotable_insights", len(b.QuotableInsights), minInsights, maxInsights)
	if len(b.CriticalConditions) > maxConditions {
		errs = append(errs, fmt.Sprintf("critical_conditions: %d entries, need at most %d", len(b.CriticalConditions), maxConditions))
	}

	for i, r := range b.CriticalRisks {
		if r.Description == "" {
			errs = append(errs, fmt.Sprintf("critical_risks[%d].description: required, got empty", i))
		}
		if r.Mitigation == "" {
			errs = append(errs, fmt.Sprintf("critical_risks[%d].mitigation: required, got empty", i))
		}
		if r.Impact < 1 || r.Impact > 5 {
			errs = append(errs, fmt.Sprintf("critical_risks[%d].impact: %d, need 1..5", i, r.Impact))
		}
		if r.Probability < 1 || r.Probability > 5 {
			errs = append(errs, fmt.Sprintf("critical_risks[%d].probability: %d, need 1..5", i, r.Probability))
		}
	}

	if b.ConfidenceLevel != nil {
		if c := *b.ConfidenceLevel; c < 0 || c > 100 {
			errs = append(errs, fmt.Sprintf("confidence_level: %g, need 0..100", c))
		}
	}

	// The risk matrix, when present, must exactly partition the risk
	// list: one entry per critical risk across the four quadrants.
	if b.RiskMatrix != nil {
		if got, want := b.RiskMatrix.Total(), len(b.CriticalRisks); got != want {
			errs = append(errs, fmt.Sprintf(
				"risk_matrix: %d entries across quadrants, must equal critical_risks length %d", got, want))
		}
	}

	for i, p := range b.Timeline {
		if p.Phase == "" {
			errs = append(errs, fmt.Sprintf("timeline[%d].phase: required, got empty", i))
		}
	}

	return errs
}
