package markdown

import (
	"strings"
	"testing"
)

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading whitespace", "\n\n  # Title\n", "# Title\n"},
		{"blank run collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"three newlines", "a\n\n\nb", "a\n\nb"},
		{"single blank kept", "a\n\nb", "a\n\nb"},
		{"indentation stripped", "a\n   b\n\t\tc", "a\nb\nc"},
		{"whitespace-only lines", "a\n\n  \n\nb", "a\n\nb"},
		{"trailing blank run", "text\n\n\n\n", "text\n\n"},
		{"fence interior untouched", "```\n  code\n\n\n\n  more\n```\n", "```\n  code\n\n\n\n  more\n```\n"},
		{"text around fence", "  intro\n\n\n```\n    x\n```\n   outro", "intro\n\n```\n    x\n```\noutro"},
		{"unpaired fence", "top\n```\n  a\n\n\n\n  b", "top\n```\n  a\n\n\n\n  b"},
		{"empty", "   \n\n", ""},
	}
	for _, tt := range tests {
		if got := PostProcess(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestPostProcess_Idempotent(t *testing.T) {
	inputs := []string{
		"\n\n# T\n\n\n\npara\n\n",
		"a\n\n  \n\nb\n   c",
		"x\n```\n  keep\n\n\n```\n\n\n\ny\n\n\n",
		"- A\n\n- B\n\n- C\n\n",
		"```\nunterminated\n\n\n",
		"> quote\n>\n> more\n",
	}
	for _, in := range inputs {
		once := PostProcess(in)
		if twice := PostProcess(once); twice != once {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestPostProcess_NoTripleNewlinesOutsideFences(t *testing.T) {
	in := "a\n\n\n\n\nb\n\n\n\nc\n\n\n\n\n\n\nd"
	got := PostProcess(in)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("expected at most two consecutive newlines, got %q", got)
	}
	if got != "a\n\nb\n\nc\n\nd" {
		t.Errorf("expected %q, got %q", "a\n\nb\n\nc\n\nd", got)
	}
}
