package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Line rules
	FmtBlankLineWhitespace  Code = 1001
	FmtTrailingWhitespace   Code = 1002
	FmtCommentSpacing       Code = 1003
	FmtUnicodeNormalization Code = 1004

	// Document rules
	FmtMissingFinalNewline Code = 2001
	FmtBlankLinesBeforeDef Code = 2002

	// IO
	IOReadFile    Code = 4001
	IOWriteFile   Code = 4002
	IOMalformed   Code = 4003
	IOCacheAccess Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	FmtBlankLineWhitespace:  "Whitespace on blank line",
	FmtTrailingWhitespace:   "Trailing whitespace",
	FmtCommentSpacing:       "Missing space after comment marker",
	FmtUnicodeNormalization: "Line is not NFC normalized",
	FmtMissingFinalNewline:  "Missing newline at end of file",
	FmtBlankLinesBeforeDef:  "Expected two blank lines before function definition",
	IOReadFile:              "Failed to read file",
	IOWriteFile:             "Failed to write file",
	IOMalformed:             "Malformed document",
	IOCacheAccess:           "Cache access failed",
}

// ID returns the stable identifier, e.g. "L1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("L%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("D%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
