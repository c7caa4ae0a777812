package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"pepfix/internal/lines"
)

// StripBlankLineWhitespace turns a whitespace-only line into a bare terminator.
// Other lines pass through unchanged.
func StripBlankLineWhitespace(line string) string {
	if lines.IsWhitespaceOnly(line) {
		return lines.Terminator
	}
	return line
}

// StripTrailingWhitespace removes spaces and tabs that precede the terminator
// (or the end of line when there is none). The terminator itself is kept, and
// other whitespace such as '\r' is left alone.
func StripTrailingWhitespace(line string) string {
	body, term := splitTerminator(line)
	return strings.TrimRight(body, " \t") + term
}

// EnsureSpaceAfterHashComment inserts a single space after a leading '#'
// when the next character is not already a space. Indentation is preserved.
func EnsureSpaceAfterHashComment(line string) string {
	if !lines.IsComment(line) {
		return line
	}
	indent := lines.Indent(line)
	after := line[len(indent)+1:]
	if strings.HasPrefix(after, " ") {
		return line
	}
	return indent + "# " + after
}

// NormalizeUnicode converts the line to Unicode normalization form C.
func NormalizeUnicode(line string) string {
	if norm.NFC.IsNormalString(line) {
		return line
	}
	return norm.NFC.String(line)
}

func splitTerminator(line string) (body, term string) {
	if lines.HasTerminator(line) {
		return line[:len(line)-len(lines.Terminator)], lines.Terminator
	}
	return line, ""
}
