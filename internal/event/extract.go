package event

import (
	"fmt"
	"strings"
)

// Bounds on list categories keep the eventual prompt size predictable
// regardless of how long the debate ran.
const (
	maxPositions  = 3
	maxChallenges = 3
	maxResearch   = 5
	maxRebuttals  = 3
	maxFactChecks = 3
	maxCitations  = 5

	// maxFragmentChars caps any single free-text fragment.
	maxFragmentChars = 1200
)

// typeAliases maps each narrative category to the canonical event-type
// names that count as a match. Incoming types are folded with
// canonicalType before comparison, so casing and separator variants
// all resolve here.
var typeAliases = map[string][]string{
	"ruling":      {"final_ruling", "ruling", "judge_ruling", "final_verdict", "verdict"},
	"convergence": {"convergence_summary", "convergence", "consensus_summary", "consensus"},
	"position":    {"opening_position", "opening_statement", "position", "opening"},
	"challenge":   {"cross_examination", "cross_exam", "cross_examination_challenge", "challenge"},
	"critique":    {"red_team_critique", "red_team", "devils_advocate", "adversarial_critique"},
	"research":    {"research_result", "research_finding", "research", "evidence"},
	"rebuttal":    {"rebuttal", "rebuttal_round", "counter_argument"},
	"factcheck":   {"fact_check", "factcheck", "fact_check_result"},
	"citation":    {"citation", "source_citation", "source"},
	"translation": {"translation", "translator_output", "translated_summary", "plain_language_summary"},
}

// Extracted is the canonical narrative derived from one event list.
// It is recomputed per pipeline invocation and never persisted.
// Confidence is always on the 0–100 scale after extraction.
type Extracted struct {
	Question    string
	Confidence  float64
	FinalRuling string
	Convergence string
	Positions   []string
	Challenges  []string
	Critique    string
	Research    []string
	Rebuttals   []string
	FactChecks  []string
	Citations   []string
	Translation string

	// Narrative is the assembled block handed to the synthesizer:
	// every non-empty section above under a fixed header.
	Narrative string
}

// Extract scans an ordered event list and assembles the canonical
// narrative. It never fails: missing, empty or malformed payload
// fields are simply omitted.
func Extract(events []RawEvent) Extracted {
	var ex Extracted

	for _, ev := range events {
		cat := categoryOf(ev.Type)
		if cat == "" {
			continue
		}

		if ex.Question == "" {
			ex.Question = lookupString(ev.Payload, "question")
		}

		switch cat {
		case "ruling":
			if ex.FinalRuling == "" {
				ex.FinalRuling = truncate(lookupString(ev.Payload, "ruling"))
			}
			if ex.Confidence == 0 {
				if raw, ok := lookupNumber(ev.Payload, "confidence"); ok {
					ex.Confidence = NormalizeConfidence(raw)
				}
			}
		case "convergence":
			if ex.Convergence == "" {
				ex.Convergence = truncate(lookupString(ev.Payload, "content"))
			}
		case "position":
			appendFragment(&ex.Positions, maxPositions, speakerPrefixed(ev.Payload, "position"))
		case "challenge":
			appendFragment(&ex.Challenges, maxChallenges, speakerPrefixed(ev.Payload, "challenge"))
		case "critique":
			if ex.Critique == "" {
				ex.Critique = truncate(lookupString(ev.Payload, "critique"))
			}
		case "research":
			appendFragment(&ex.Research, maxResearch, lookupString(ev.Payload, "finding"))
		case "rebuttal":
			appendFragment(&ex.Rebuttals, maxRebuttals, speakerPrefixed(ev.Payload, "rebuttal"))
		case "factcheck":
			appendFragment(&ex.FactChecks, maxFactChecks, factCheckLine(ev.Payload))
		case "citation":
			appendFragment(&ex.Citations, maxCitations, lookupString(ev.Payload, "citation"))
		case "translation":
			if ex.Translation == "" {
				ex.Translation = truncate(lookupString(ev.Payload, "content"))
			}
		}
	}

	// Fall back to any event carrying a confidence value when the
	// ruling did not provide one.
	if ex.Confidence == 0 {
		for _, ev := range events {
			if raw, ok := lookupNumber(ev.Payload, "confidence"); ok {
				ex.Confidence = NormalizeConfidence(raw)
				break
			}
		}
	}

	ex.Narrative = buildNarrative(&ex)
	return ex
}

// NormalizeConfidence maps a raw confidence value to the 0–100 scale.
// Values above 1 are treated as already percentile; values in [0,1]
// as fractions. The result is clamped to [0,100].
func NormalizeConfidence(raw float64) float64 {
	v := raw
	if v <= 1 {
		v *= 100
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func categoryOf(eventType string) string {
	ct := canonicalType(eventType)
	if ct == "" {
		return ""
	}
	for cat, aliases := range typeAliases {
		for _, a := range aliases {
			if ct == a {
				return cat
			}
		}
	}
	return ""
}

func appendFragment(dst *[]string, limit int, s string) {
	if s == "" || len(*dst) >= limit {
		return
	}
	*dst = append(*dst, truncate(s))
}

func speakerPrefixed(payload map[string]any, field string) string {
	text := lookupString(payload, field)
	if text == "" {
		return ""
	}
	if speaker := lookupString(payload, "speaker"); speaker != "" {
		return speaker + ": " + text
	}
	return text
}

func factCheckLine(payload map[string]any) string {
	claim := lookupString(payload, "claim")
	verdict := lookupString(payload, "verdict")
	switch {
	case claim == "":
		return verdict
	case verdict == "":
		return claim
	default:
		return fmt.Sprintf("%s — verdict: %s", claim, verdict)
	}
}

func truncate(s string) string {
	if len(s) <= maxFragmentChars {
		return s
	}
	cut := s[:maxFragmentChars]
	// Do not split a multi-byte rune at the boundary.
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut + "…"
}

func buildNarrative(ex *Extracted) string {
	var b strings.Builder

	section := func(header, body string) {
		if body == "" {
			return
		}
		b.WriteString("## ")
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	listSection := func(header string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("## ")
		b.WriteString(header)
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString("- ")
			b.WriteString(it)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("FINAL RULING", ex.FinalRuling)
	section("CONVERGENCE SUMMARY", ex.Convergence)
	listSection("OPENING POSITIONS", ex.Positions)
	listSection("CROSS-EXAMINATION CHALLENGES", ex.Challenges)
	section("RED-TEAM CRITIQUE", ex.Critique)
	listSection("RESEARCH FINDINGS", ex.Research)
	listSection("REBUTTALS", ex.Rebuttals)
	listSection("FACT CHECKS", ex.FactChecks)
	listSection("CITATIONS", ex.Citations)
	section("PLAIN-LANGUAGE SUMMARY", ex.Translation)

	return strings.TrimRight(b.String(), "\n")
}
