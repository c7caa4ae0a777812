package driver

import (
	"fmt"
	"strings"

	"pepfix/internal/diag"
	"pepfix/internal/lines"
	"pepfix/internal/observ"
	"pepfix/internal/rules"
)

// Options selects the optional rules. The zero value runs the default set:
// whitespace stripping, the final newline and spacing before "def".
type Options struct {
	CommentSpacing bool
	UnicodeNFC     bool
	SkipDecorators bool
	Keywords       []string // nil means lines.DefaultDefKeywords
}

// Fingerprint identifies the option set for cache keys.
func (o Options) Fingerprint() string {
	keywords := o.Keywords
	if len(keywords) == 0 {
		keywords = lines.DefaultDefKeywords
	}
	return fmt.Sprintf("v1;comment=%t;nfc=%t;decorators=%t;kw=%s",
		o.CommentSpacing, o.UnicodeNFC, o.SkipDecorators, strings.Join(keywords, ","))
}

func (o Options) spacing() rules.SpacingOptions {
	return rules.SpacingOptions{Keywords: o.Keywords, SkipDecorators: o.SkipDecorators}
}

// stageHook is called as each stage of run starts.
type stageHook func(Stage)

// Run applies every enabled rule to doc in place: the line rules to each
// line, then the final newline, then blank-line spacing. Malformed documents
// are rejected before anything is changed.
func Run(doc *lines.Document, opts Options, r diag.Reporter) error {
	return run(doc, opts, r, nil, nil)
}

func run(doc *lines.Document, opts Options, r diag.Reporter, timer *observ.Timer, hook stageHook) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if r == nil {
		r = diag.NopReporter{}
	}
	step := func(stage Stage) func(string) {
		if hook != nil {
			hook(stage)
		}
		return timer.Track(string(stage))
	}

	done := step(StageNormalize)
	changed := 0
	for i := 0; i < doc.Len(); i++ {
		if normalizeLine(doc, i, opts, r) {
			changed++
		}
	}
	done(fmt.Sprintf("%d lines", changed))

	done = step(StageNewline)
	rules.EnsureTrailingNewline(doc, r)
	done("")

	done = step(StageSpacing)
	inserted := rules.EnforceBlankLinesBeforeDefs(doc, opts.spacing(), r)
	done(fmt.Sprintf("%d inserted", inserted))
	return nil
}

// normalizeLine runs the line rules over line i. Diagnostics are only
// reported when the line ends up different, so rules that cancel out
// (comment spacing on a bare "#" followed by trailing strip) stay quiet.
func normalizeLine(doc *lines.Document, i int, opts Options, r diag.Reporter) bool {
	orig := doc.At(i)
	cur := orig
	var fired []diag.Code
	apply := func(code diag.Code, fn func(string) string) {
		if next := fn(cur); next != cur {
			cur = next
			fired = append(fired, code)
		}
	}

	if opts.CommentSpacing && (i != 0 || !isShebang(orig)) {
		apply(diag.FmtCommentSpacing, rules.EnsureSpaceAfterHashComment)
	}
	apply(diag.FmtBlankLineWhitespace, rules.StripBlankLineWhitespace)
	apply(diag.FmtTrailingWhitespace, rules.StripTrailingWhitespace)
	if opts.UnicodeNFC {
		apply(diag.FmtUnicodeNormalization, rules.NormalizeUnicode)
	}

	if cur == orig {
		return false
	}
	doc.Set(i, cur)
	for _, code := range fired {
		diag.ReportInfo(r, code, i+1, code.Title())
	}
	return true
}

func isShebang(line string) bool {
	return strings.HasPrefix(line, "#!")
}

// Normalize parses src, runs the pipeline and returns the rendered result
// along with the diagnostics describing each correction.
func Normalize(src []byte, opts Options) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag(diag.DefaultMax)
	doc := lines.Parse(src)
	if err := Run(doc, opts, diag.BagReporter{Bag: bag}); err != nil {
		return nil, bag, err
	}
	return doc.Bytes(), bag, nil
}
