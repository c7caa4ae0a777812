package rules

import (
	"errors"

	"pepfix/internal/diag"
	"pepfix/internal/lines"
)

// EnsureTrailingNewline terminates the last line of doc when it lacks a
// terminator, so the file ends with exactly one. It reports whether doc
// changed. Empty documents are left alone.
func EnsureTrailingNewline(doc *lines.Document, r diag.Reporter) bool {
	last, err := doc.Last()
	if errors.Is(err, lines.ErrEmptyDocument) {
		return false
	}
	if lines.HasTerminator(last) {
		return false
	}
	doc.Set(doc.Len()-1, last+lines.Terminator)
	diag.ReportInfo(r, diag.FmtMissingFinalNewline, doc.Len(), "added newline at end of file")
	return true
}
