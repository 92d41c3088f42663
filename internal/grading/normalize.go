package grading

import "strings"

// Normalize produces the canonical form used for answer comparison:
// line breaks unified to LF, outer whitespace trimmed, lowercase, and
// runs of horizontal whitespace collapsed within each line. Line breaks
// stay significant so multi-line answers compare line by line.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ToLower(strings.TrimSpace(s))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
