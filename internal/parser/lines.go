package parser

import (
	"strings"
	"unicode"
)

// SplitLines normalizes line endings and returns the non-blank lines of raw
// in their original order.
//
// "\r\n" and lone "\r" both count as line terminators. A segment that is
// empty or made only of whitespace is dropped. The surviving lines are not
// trimmed; field trimming happens in ParseLine.
func SplitLines(raw string) []string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	segments := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		if IsBlank(segment) {
			continue
		}
		lines = append(lines, segment)
	}
	return lines
}

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return TrimSpace(s) == ""
}

// TrimSpace removes leading and trailing white space, including the
// U+FEFF byte order mark that editors leave at the start of exported files.
// U+0085 (NEL) is not white space here and is kept.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}
