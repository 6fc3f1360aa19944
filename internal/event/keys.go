package event

import (
	"fmt"
	"strconv"
)

// candidateKeys maps each canonical payload field to the spellings
// historical producers have used for it, in priority order. All
// multi-convention tolerance lives in this one table; extraction code
// never branches on key casing itself.
var candidateKeys = map[string][]string{
	"question":   {"question", "topic", "debate_question", "debateQuestion", "prompt"},
	"confidence": {"confidence", "confidence_score", "confidenceScore", "confidence_level", "confidenceLevel"},
	"content":    {"content", "text", "message", "body", "summary"},
	"ruling":     {"ruling", "verdict", "decision", "final_ruling", "finalRuling", "content", "text"},
	"position":   {"position", "stance", "argument", "opening_statement", "openingStatement", "content", "text"},
	"challenge":  {"challenge", "question", "cross_examination", "crossExamination", "content", "text"},
	"critique":   {"critique", "criticism", "red_team", "redTeam", "content", "text"},
	"finding":    {"finding", "result", "research", "content", "text"},
	"rebuttal":   {"rebuttal", "response", "counter", "content", "text"},
	"claim":      {"claim", "statement", "fact", "content", "text"},
	"verdict":    {"verdict", "assessment", "status", "result"},
	"citation":   {"citation", "source", "reference", "url", "link"},
	"speaker":    {"speaker", "agent", "agent_name", "agentName", "participant", "role"},
}

// lookupString resolves a canonical field against a payload, trying
// each candidate key in order. Non-string scalars are rendered with
// strconv/fmt so numeric payload values still contribute text. Returns
// "" when nothing usable is present.
func lookupString(payload map[string]any, field string) string {
	if payload == nil {
		return ""
	}
	for _, key := range candidateKeys[field] {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case bool:
			return strconv.FormatBool(s)
		case fmt.Stringer:
			return s.String()
		}
	}
	return ""
}

// lookupNumber resolves a canonical field to a float64, accepting
// JSON numbers and numeric strings. The second return reports whether
// a usable value was found.
func lookupNumber(payload map[string]any, field string) (float64, bool) {
	if payload == nil {
		return 0, false
	}
	for _, key := range candidateKeys[field] {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
