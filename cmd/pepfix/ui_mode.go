package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of --ui.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.TrimSpace(strings.ToLower(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// enabled resolves auto against whether out is a terminal.
func (m uiMode) enabled(out *os.File) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

// wantsProgressUI reports whether a batch run should render the progress
// view. Only in-place text runs that print per-file lines qualify.
func wantsProgressUI(f fixFlags) bool {
	if !f.overwrite || f.check || f.stdout || f.quiet || f.format != "text" {
		return false
	}
	return f.ui.enabled(os.Stdout)
}
