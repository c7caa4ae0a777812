// Package diag defines the diagnostic model shared by the normalizer rules,
// the pipeline driver and the CLI.
//
// # Purpose
//
//   - Record every correction a rule performs as a deterministic Diagnostic
//     (severity, code, message, path and 1-based line).
//   - Let rules emit through a Reporter without knowing how diagnostics are
//     stored or rendered.
//
// # Scope
//
// Package diag does not format for terminals or perform IO. Rendering lives in
// internal/diagfmt; the driver decides which Bag a file's diagnostics go to.
//
// Rules only report what they change. A diagnostic never describes a problem
// pepfix leaves in place.
package diag
