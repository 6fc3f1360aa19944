// Package session loads the pipeline's input: an ordered event list
// plus session metadata, from a YAML or JSON file produced by the
// upstream debate store.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"debrief/internal/event"
)

// Session is one complete deliberation: metadata plus the full
// timeline. Events are sorted by sequence id on load; the pipeline
// assumes that order.
type Session struct {
	Topic        string           `json:"topic" yaml:"topic"`
	Participants []string         `json:"participants" yaml:"participants"`
	Events       []event.RawEvent `json:"events" yaml:"events"`
}

// LoadFile reads a session file and returns the parsed Session.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON)
// or by content (first non-whitespace char).
func LoadFile(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a session from bytes. ext is the file extension for a
// format hint; empty means detect from content.
func Load(data []byte, ext string) (*Session, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}

	var s Session
	switch {
	case ext == ".yaml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse session yaml: %w", err)
		}
	case ext == ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse session json: %w", err)
		}
	default:
		// Detect: JSON starts with {, else YAML.
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "{") {
			if err := json.Unmarshal(data, &s); err != nil {
				return nil, fmt.Errorf("parse session json: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return nil, fmt.Errorf("parse session yaml: %w", err)
			}
		}
	}

	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].SequenceID < s.Events[j].SequenceID
	})
	return &s, nil
}
