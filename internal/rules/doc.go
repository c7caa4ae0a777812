// Package rules implements the corrections pepfix applies to a document.
//
// Line rules are pure functions over a single line and never change the
// number of lines. Document rules (EnsureTrailingNewline and
// EnforceBlankLinesBeforeDefs) mutate a *lines.Document in place and report
// what they did through a diag.Reporter.
//
// Every rule is idempotent: applying it to its own output changes nothing.
package rules
