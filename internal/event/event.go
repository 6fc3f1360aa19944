// Package event normalizes the raw debate-session timeline into the
// canonical narrative content the synthesis pipeline consumes.
package event

import (
	"strings"
	"time"
)

// RawEvent is one timestamped record emitted by the upstream debate
// engine. Events arrive ordered by SequenceID and are never mutated.
// Historical producers disagree on type-name spelling ("research_result"
// vs "Research Result") and payload key casing; extraction tolerates
// both.
type RawEvent struct {
	ID         string         `json:"id" yaml:"id"`
	SequenceID int            `json:"sequence_id" yaml:"sequence_id"`
	Phase      string         `json:"phase" yaml:"phase"`
	Type       string         `json:"event_type" yaml:"event_type"`
	Payload    map[string]any `json:"payload" yaml:"payload"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
}

// canonicalType folds an event type name to lower snake_case so
// "Research Result", "research-result" and "researchResult" all
// compare equal to "research_result".
func canonicalType(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevUnderscore := true
	for i, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		case r >= 'A' && r <= 'Z':
			// camelCase boundary becomes an underscore
			if i > 0 && !prevUnderscore {
				prev := rune(s[i-1])
				if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r + ('a' - 'A'))
			prevUnderscore = false
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}
