package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pepfix/internal/version"
)

// versionReport is the build metadata selected by the version flags. Empty
// optional fields are left out of both outputs.
type versionReport struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionFlags struct {
	format  string
	hash    bool
	message bool
	date    bool
	full    bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pepfix build information",
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.hash, "hash", false, "include git commit hash")
	f.BoolVar(&versionFlags.message, "message", false, "include git commit message")
	f.BoolVar(&versionFlags.date, "date", false, "include build timestamp")
	f.BoolVar(&versionFlags.full, "full", false, "show all recorded build metadata")
	f.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	full := versionFlags.full
	report := newVersionReport(versionFlags.hash || full, versionFlags.message || full, versionFlags.date || full)

	switch strings.ToLower(versionFlags.format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty":
		report.writePretty(cmd.OutOrStdout(), useColor)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFlags.format)
	}
}

// newVersionReport reads the linked build metadata. Requested fields that
// were not recorded at build time read "unknown".
func newVersionReport(hash, message, date bool) versionReport {
	report := versionReport{Tool: "pepfix", Version: strings.TrimSpace(version.Version)}
	if report.Version == "" {
		report.Version = "dev"
	}
	pick := func(want bool, value string) string {
		if !want {
			return ""
		}
		if value = strings.TrimSpace(value); value == "" {
			return "unknown"
		}
		return value
	}
	report.GitCommit = pick(hash, version.GitCommit)
	report.GitMessage = pick(message, version.GitMessage)
	report.BuildDate = pick(date, version.BuildDate)
	return report
}

func (r versionReport) writePretty(out io.Writer, colored bool) {
	v := r.Version
	if colored {
		v = version.Colored()
	}
	fmt.Fprintf(out, "%s %s\n", r.Tool, v)
	for _, line := range []struct{ label, value string }{
		{"commit:", r.GitCommit},
		{"message:", r.GitMessage},
		{"built:", r.BuildDate},
	} {
		if line.value != "" {
			fmt.Fprintf(out, "%-8s %s\n", line.label, line.value)
		}
	}
}
