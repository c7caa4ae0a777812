package rules

import (
	"fmt"

	"pepfix/internal/diag"
	"pepfix/internal/lines"
)

// RequiredBlankLines is the number of blank lines expected above a
// top-of-block function definition.
const RequiredBlankLines = 2

// SpacingOptions tunes EnforceBlankLinesBeforeDefs.
type SpacingOptions struct {
	// Keywords open a function definition; nil means lines.DefaultDefKeywords.
	Keywords []string
	// SkipDecorators treats '@' lines above a definition like comments.
	SkipDecorators bool
}

// EnforceBlankLinesBeforeDefs makes sure two blank lines precede every
// function definition after the first line. Comment lines directly above a
// definition belong to it, so blank lines go above the comments. Existing
// runs of three or more blank lines are kept as is.
//
// Definitions are located once up front; each insertion shifts later
// definitions, which is tracked with a running offset. Diagnostics carry the
// definition's line number in the unmodified input. It returns the number of
// inserted lines.
func EnforceBlankLinesBeforeDefs(doc *lines.Document, opts SpacingOptions, r diag.Reporter) int {
	var defs []int
	for i := 1; i < doc.Len(); i++ {
		if lines.IsFuncDef(doc.At(i), opts.Keywords) {
			defs = append(defs, i)
		}
	}

	offset := 0
	for _, orig := range defs {
		cur := orig + offset
		at, count := missingBlankLines(doc, cur, opts)
		if count == 0 {
			continue
		}
		blanks := make([]string, count)
		for i := range blanks {
			blanks[i] = lines.Terminator
		}
		doc.Insert(at, blanks...)
		offset += count
		diag.ReportInfo(r, diag.FmtBlankLinesBeforeDef, orig+1,
			fmt.Sprintf("inserted %d blank line(s) before function definition", count))
	}
	return offset
}

// missingBlankLines inspects the lines above the definition at index def and
// returns where blank lines must be inserted and how many.
func missingBlankLines(doc *lines.Document, def int, opts SpacingOptions) (at, count int) {
	above := def - 1
	for above >= 0 && isAttached(doc.At(above), opts) {
		above--
	}
	if above < 0 {
		// Only comments (or decorators) between the definition and the top.
		return 0, 0
	}

	if !lines.IsBlank(doc.At(above)) {
		return above + 1, RequiredBlankLines
	}
	if above == 0 {
		return 0, 0
	}
	if !lines.IsBlank(doc.At(above - 1)) {
		return above, RequiredBlankLines - 1
	}
	return 0, 0
}

func isAttached(line string, opts SpacingOptions) bool {
	if lines.IsComment(line) {
		return true
	}
	return opts.SkipDecorators && lines.IsDecorator(line)
}
