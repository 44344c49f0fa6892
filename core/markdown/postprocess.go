package markdown

import (
	"strings"
	"unicode"
)

// PostProcess tidies rendered output: leading whitespace of the document is
// removed, blank-line runs outside fenced code collapse to one blank line,
// and lines outside fences lose their leading whitespace. A line whose
// content starts with ``` toggles the fence state, so an unpaired fence
// protects the rest of the document. Running PostProcess on its own output
// changes nothing.
func PostProcess(md string) string {
	md = strings.TrimLeftFunc(md, unicode.IsSpace)
	lines := strings.Split(md, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blanks := 0
	for _, line := range lines {
		switch {
		case isFence(line):
			inFence = !inFence
			blanks = 0
		case inFence:
			blanks = 0
		default:
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
			if line == "" {
				blanks++
				if blanks > 1 {
					continue
				}
			} else {
				blanks = 0
			}
		}
		out = append(out, line)
	}
	// Trailing empty lines each stand for one newline, so a document ending
	// in a blank run keeps two of them ("text\n\n").
	if blanks > 1 {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
