package main

import (
	"encoding/json"
	"fmt"
	"io"

	"pepfix/internal/diag"
	"pepfix/internal/diagfmt"
	"pepfix/internal/driver"
	"pepfix/internal/observ"
)

func renderFixStdout(out, errOut io.Writer, results []driver.FixResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "fix: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFixText(out, errOut io.Writer, results []driver.FixResult, f fixFlags) {
	minLevel := diag.SevWarning
	if f.verbose {
		minLevel = diag.SevInfo
	}
	for _, res := range results {
		if res.Diagnostics != nil && !f.quiet {
			res.Diagnostics.Sort()
			diagfmt.Pretty(errOut, res.Diagnostics, diagfmt.PrettyOpts{Color: f.color, MinLevel: minLevel})
		}
		if res.Err != nil {
			if res.Diagnostics == nil || f.quiet {
				fmt.Fprintf(errOut, "fix: %s: %v\n", res.Path, res.Err)
			}
			continue
		}
		if f.quiet {
			continue
		}

		switch {
		case f.check:
			if res.Changed {
				fmt.Fprintln(out, res.Path)
			}
		case f.overwrite:
			if res.Changed {
				fmt.Fprintf(out, "reformatted %s\n", res.Path)
			}
		case res.Destination != "":
			fmt.Fprintf(out, "created %s\n", res.Destination)
		}
	}
}

// renderFixShort prints every diagnostic of the batch in the stable short form.
func renderFixShort(out io.Writer, results []driver.FixResult) {
	var all []diag.Diagnostic
	for _, res := range results {
		if res.Diagnostics != nil {
			all = append(all, res.Diagnostics.Items()...)
		}
	}
	if text := diag.FormatShortDiagnostics(all); text != "" {
		fmt.Fprintln(out, text)
	}
}

type fixJSONResult struct {
	Path        string                   `json:"path"`
	Destination string                   `json:"destination,omitempty"`
	Changed     bool                     `json:"changed"`
	Cached      bool                     `json:"cached,omitempty"`
	CheckRun    bool                     `json:"check"`
	Error       string                   `json:"error,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
	Timing      *observ.Report           `json:"timing,omitempty"`
}

func renderFixJSON(out io.Writer, results []driver.FixResult, f fixFlags) error {
	payload := make([]fixJSONResult, 0, len(results))
	for _, res := range results {
		jr := fixJSONResult{
			Path:        res.Path,
			Destination: res.Destination,
			Changed:     res.Changed,
			Cached:      res.Cached,
			CheckRun:    f.check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Diagnostics != nil && res.Diagnostics.Len() > 0 {
			res.Diagnostics.Sort()
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Diagnostics, diagfmt.JSONOpts{}).Diagnostics
		}
		if f.timings {
			timing := res.Timing
			jr.Timing = &timing
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// printFixTimings prints per-phase totals across all files.
func printFixTimings(out io.Writer, results []driver.FixResult) {
	var total observ.Report
	for _, res := range results {
		total.Merge(res.Timing)
	}
	if len(total.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "timings (%d files):\n", len(results))
	for _, p := range total.Phases {
		fmt.Fprintf(out, "  %-10s %8.1f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "  %-10s %8.1f ms\n", "total", total.TotalMS)
}
