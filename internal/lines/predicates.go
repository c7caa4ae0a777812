package lines

import "strings"

// DefaultDefKeywords holds the tokens that open a function definition.
var DefaultDefKeywords = []string{"def"}

// HasTerminator reports whether line ends with the terminator.
func HasTerminator(line string) bool {
	return strings.HasSuffix(line, Terminator)
}

// Content returns line without its terminator.
func Content(line string) string {
	return strings.TrimSuffix(line, Terminator)
}

// IsBlank reports whether line consists solely of the terminator.
func IsBlank(line string) bool {
	return line == Terminator
}

// IsWhitespaceOnly reports whether line is empty after trimming all whitespace.
func IsWhitespaceOnly(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Indent returns the leading spaces and tabs of line.
func Indent(line string) string {
	return line[:len(line)-len(trimIndent(line))]
}

// IsComment reports whether line, ignoring indentation, starts with '#'.
func IsComment(line string) bool {
	return strings.HasPrefix(trimIndent(line), "#")
}

// IsDecorator reports whether line, ignoring indentation, starts with '@'.
func IsDecorator(line string) bool {
	return strings.HasPrefix(trimIndent(line), "@")
}

// IsFuncDef reports whether line, ignoring indentation, starts with one of
// keywords as a whole token. A nil keywords slice means DefaultDefKeywords.
func IsFuncDef(line string, keywords []string) bool {
	if keywords == nil {
		keywords = DefaultDefKeywords
	}
	body := trimIndent(line)
	for _, kw := range keywords {
		if kw == "" || !strings.HasPrefix(body, kw) {
			continue
		}
		rest := body[len(kw):]
		if rest == "" {
			continue
		}
		switch rest[0] {
		case ' ', '\t', '(':
			return true
		}
	}
	return false
}

func trimIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}
