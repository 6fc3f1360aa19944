package render

import (
	"fmt"
	"strings"
)

// sectionKeywords is the minimal content vocabulary a rendered brief
// must show at least one of. Case-insensitive.
var sectionKeywords = []string{
	"executive summary",
	"recommendation",
	"bottom line",
	"critical risks",
	"immediate actions",
}

// CheckStructure verifies the structural contract a document must meet
// before it is handed to the PDF compositor: well-formed skeleton,
// page-break-avoidance markers, at least one recognizable brief
// section, and styling. Returns every problem found; empty means the
// markup is acceptable.
func CheckStructure(html string) []string {
	var errs []string
	lower := strings.ToLower(html)

	if !strings.Contains(lower, "<!doctype") {
		errs = append(errs, "missing doctype declaration")
	}
	for _, tag := range []string{"<html", "<head", "<body"} {
		if !strings.Contains(lower, tag) {
			errs = append(errs, fmt.Sprintf("missing %s> tag", tag))
		}
	}

	for _, tag := range []string{"html", "body"} {
		opens := strings.Count(lower, "<"+tag)
		closes := strings.Count(lower, "</"+tag+">")
		if opens > 0 && opens != closes {
			errs = append(errs, fmt.Sprintf("unbalanced <%s> tags: %d open, %d close", tag, opens, closes))
		}
	}

	if !strings.Contains(lower, "page-break-inside") {
		errs = append(errs, "missing page-break-inside CSS markers; the PDF converter may slice blocks across pages")
	}

	found := false
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			found = true
			break
		}
	}
	if !found {
		errs = append(errs, fmt.Sprintf("no recognizable brief section (need one of: %s)", strings.Join(sectionKeywords, ", ")))
	}

	if !strings.Contains(lower, "<style") && !strings.Contains(lower, "style=") {
		errs = append(errs, "no styling found (neither <style> block nor inline styles)")
	}

	return errs
}
