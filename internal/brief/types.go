// Package brief defines the executive-brief contract, validates
// generated briefs against it, and drives the synthesis call with
// validation-aware retry.
package brief

// Brief is the validated canonical contract summarizing a debate into
// board-ready decision content. Field names mirror the JSON contract
// the generation service is instructed to produce.
type Brief struct {
	BottomLine         string          `json:"bottom_line"`
	Opportunity        string          `json:"opportunity"`
	Recommendation     string          `json:"recommendation"`
	Requirement        string          `json:"requirement"`
	ExecutiveSummary   string          `json:"executive_summary"`
	Rationale          []string        `json:"rationale"`
	CriticalRisks      []Risk          `json:"critical_risks"`
	ImmediateActions   []string        `json:"immediate_actions"`
	CriticalConditions []string        `json:"critical_conditions"`
	ConfidenceLevel    *float64        `json:"confidence_level,omitempty"`
	QuotableInsights   []string        `json:"quotable_insights"`
	SWOT               *SWOT           `json:"swot,omitempty"`
	RiskMatrix         *RiskMatrix     `json:"risk_matrix,omitempty"`
	Timeline           []TimelinePhase `json:"timeline,omitempty"`
}

// Risk is one critical risk with a 1–5 impact/probability score.
type Risk struct {
	Description string `json:"description"`
	Impact      int    `json:"impact"`
	Probability int    `json:"probability"`
	Mitigation  string `json:"mitigation"`
}

// SWOT holds the optional strengths/weaknesses/opportunities/threats
// breakdown.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// RiskMatrix sorts the critical risks into four impact/probability
// quadrants. When present, the quadrants must exactly partition the
// critical_risks list: every risk in exactly one quadrant.
type RiskMatrix struct {
	HighImpactHighProbability []string `json:"high_impact_high_probability"`
	HighImpactLowProbability  []string `json:"high_impact_low_probability"`
	LowImpactHighProbability  []string `json:"low_impact_high_probability"`
	LowImpactLowProbability   []string `json:"low_impact_low_probability"`
}

// Total returns the entry count across all four quadrants.
func (m *RiskMatrix) Total() int {
	if m == nil {
		return 0
	}
	return len(m.HighImpactHighProbability) +
		len(m.HighImpactLowProbability) +
		len(m.LowImpactHighProbability) +
		len(m.LowImpactLowProbability)
}

// TimelinePhase is one phase of the optional implementation timeline.
type TimelinePhase struct {
	Phase        string   `json:"phase"`
	Duration     string   `json:"duration"`
	Activities   []string `json:"activities"`
	Deliverables []string `json:"deliverables"`
	Dependencies []string `json:"dependencies"`
}
