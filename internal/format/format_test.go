package format_test

import (
	"strings"
	"testing"

	"debrief/internal/brief"
	"debrief/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Risk", "Impact")
	tb.Row("Pilot underperforms", "4/5")
	tb.Row("Key hire slips", "3/5")
	out := tb.String()

	if !strings.Contains(out, "Risk") {
		t.Errorf("expected header 'Risk' in output:\n%s", out)
	}
	if !strings.Contains(out, "Pilot underperforms") {
		t.Errorf("expected row data in output:\n%s", out)
	}
	// ASCII uses box-drawing characters from StyleLight
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Action", "Owner")
	tb.Row("Name the owner", "CEO")
	out := tb.String()

	if !strings.Contains(out, "| Action") {
		t.Errorf("expected markdown header with '| Action':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}

	ascii := build(format.ASCII)
	md := build(format.Markdown)

	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

func TestColumns_WrapAndCenter(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Risk", "Impact")
	tb.Columns(
		format.ColumnConfig{Number: 1, MaxWidth: 10},
		format.ColumnConfig{Number: 2, Center: true},
	)
	long := "aaaaaaaaaabbbbbbbbbb"
	tb.Row(long, "4/5")
	out := tb.String()

	if strings.Contains(out, long) {
		t.Errorf("column exceeding MaxWidth should wrap:\n%s", out)
	}
	for _, part := range []string{"aaaaaaaaaa", "bbbbbbbbbb", "4/5"} {
		if !strings.Contains(out, part) {
			t.Errorf("missing %q in wrapped output:\n%s", part, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"ab", 3, "ab"},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		got := format.Truncate(tc.in, tc.maxLen)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestBriefSummary(t *testing.T) {
	conf := 78.0
	b := &brief.Brief{
		BottomLine:      "Proceed with the pilot.",
		ConfidenceLevel: &conf,
		CriticalRisks: []brief.Risk{
			{Description: "Pilot underperforms", Impact: 4, Probability: 2, Mitigation: "Kill criteria"},
		},
		ImmediateActions: []string{"Name the owner.", "Approve budget."},
	}
	out := format.BriefSummary(b, format.ASCII)

	for _, want := range []string{"BOTTOM LINE: Proceed with the pilot.", "78/100", "Pilot underperforms", "4/5", "1. Name the owner."} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestViolationTable(t *testing.T) {
	out := format.ViolationTable([]string{"critical_risks: 2 entries, need 3..10"}, format.ASCII)
	if !strings.Contains(out, "critical_risks") {
		t.Errorf("violation table missing content:\n%s", out)
	}
	if !strings.Contains(out, "1") {
		t.Errorf("violation table missing index:\n%s", out)
	}
}
