package lines

import (
	"errors"
	"fmt"
	"strings"
)

// Terminator ends every line except possibly the last one.
const Terminator = "\n"

var (
	// ErrEmptyDocument is returned when an operation needs at least one line.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrMalformedDocument is returned when a non-final line lacks its terminator.
	ErrMalformedDocument = errors.New("malformed document")
)

// Document is an ordered, mutable-length sequence of lines.
// Each line keeps its terminator; only the final line may lack one.
type Document struct {
	lines []string
}

// New builds a document from already split lines. The slice is copied.
func New(lines ...string) *Document {
	d := &Document{lines: make([]string, len(lines))}
	copy(d.lines, lines)
	return d
}

// Parse splits content into lines, keeping the terminators.
func Parse(content []byte) *Document {
	d := &Document{}
	if len(content) == 0 {
		return d
	}
	d.lines = strings.SplitAfter(string(content), Terminator)
	// SplitAfter yields a trailing empty element when content ends with '\n'.
	if last := len(d.lines) - 1; d.lines[last] == "" {
		d.lines = d.lines[:last]
	}
	return d
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// At returns the line at index i.
func (d *Document) At(i int) string { return d.lines[i] }

// Set replaces the line at index i.
func (d *Document) Set(i int, line string) { d.lines[i] = line }

// Append adds lines at the end.
func (d *Document) Append(lines ...string) { d.lines = append(d.lines, lines...) }

// Insert places lines before index at, shifting the following lines.
// at == Len() appends.
func (d *Document) Insert(at int, lines ...string) {
	if at < 0 || at > len(d.lines) {
		panic(fmt.Sprintf("lines: insert index %d out of range [0,%d]", at, len(d.lines)))
	}
	if len(lines) == 0 {
		return
	}
	d.lines = append(d.lines, lines...)
	copy(d.lines[at+len(lines):], d.lines[at:])
	copy(d.lines[at:], lines)
}

// Last returns the final line.
func (d *Document) Last() (string, error) {
	if len(d.lines) == 0 {
		return "", ErrEmptyDocument
	}
	return d.lines[len(d.lines)-1], nil
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Bytes concatenates the lines in order.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l)
	}
	return []byte(b.String())
}

// Validate checks that only the final line lacks a terminator.
func (d *Document) Validate() error {
	for i := 0; i < len(d.lines)-1; i++ {
		if !HasTerminator(d.lines[i]) {
			return fmt.Errorf("%w: line %d has no terminator", ErrMalformedDocument, i+1)
		}
	}
	return nil
}
