package pipeline

import (
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitLines normalizes line endings and splits content into lines that keep
// their trailing newline. A final line without newline is kept as is.
func SplitLines(content string) []string {
	content = normalizeLineEndings(content)
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
