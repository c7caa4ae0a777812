package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"pepfix/internal/config"
	"pepfix/internal/diag"
	"pepfix/internal/driver"
	"pepfix/internal/observ"
)

func newFixTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "fix"}
	addFixFlags(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestValidateFixArgs(t *testing.T) {
	cases := []struct {
		name    string
		flags   fixFlags
		args    []string
		wantErr bool
	}{
		{"new file", fixFlags{format: "text"}, []string{"a.py", "b.py"}, false},
		{"missing destination", fixFlags{format: "text"}, []string{"a.py"}, true},
		{"too many paths", fixFlags{format: "text"}, []string{"a", "b", "c"}, true},
		{"overwrite batch", fixFlags{format: "text", overwrite: true}, []string{"a", "b", "c"}, false},
		{"check", fixFlags{format: "json", check: true}, []string{"."}, false},
		{"stdout with check", fixFlags{format: "text", stdout: true, check: true}, []string{"."}, true},
		{"stdout with json", fixFlags{format: "json", stdout: true}, []string{"."}, true},
		{"bad format", fixFlags{format: "xml", overwrite: true}, []string{"."}, true},
		{"negative jobs", fixFlags{format: "text", overwrite: true, jobs: -1}, []string{"."}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateFixArgs(tc.flags, tc.args)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateFixArgs() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}

	err := validateFixArgs(fixFlags{format: "text"}, []string{"a.py"})
	if !errors.Is(err, driver.ErrNoDestination) {
		t.Fatalf("missing destination must wrap ErrNoDestination, got %v", err)
	}
}

func TestDriverOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.CommentSpacing = true
	cfg.Rules.Decorators = true

	opts, err := driverOptions(newFixTestCmd(t), cfg)
	if err != nil {
		t.Fatalf("driverOptions: %v", err)
	}
	if !opts.CommentSpacing || !opts.SkipDecorators || opts.UnicodeNFC {
		t.Fatalf("config values not applied: %+v", opts)
	}

	cmd := newFixTestCmd(t, "--comment-spacing=false", "--nfc", "--def-keyword=def,async def")
	opts, err = driverOptions(cmd, cfg)
	if err != nil {
		t.Fatalf("driverOptions: %v", err)
	}
	if opts.CommentSpacing || !opts.UnicodeNFC || !opts.SkipDecorators {
		t.Fatalf("flags did not override config: %+v", opts)
	}
	if !slices.Equal(opts.Keywords, []string{"def", "async def"}) {
		t.Fatalf("keywords = %q", opts.Keywords)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
	if !uiModeOn.enabled(nil) || uiModeOff.enabled(nil) {
		t.Fatalf("explicit modes must win")
	}
	if wantsProgressUI(fixFlags{overwrite: true, format: "text", ui: uiModeOff}) {
		t.Fatalf("--ui=off must disable the progress view")
	}
	if !wantsProgressUI(fixFlags{overwrite: true, format: "text", ui: uiModeOn}) {
		t.Fatalf("--ui=on must enable the progress view for in-place runs")
	}
	if wantsProgressUI(fixFlags{check: true, format: "text", ui: uiModeOn}) {
		t.Fatalf("check runs never show the progress view")
	}
}

func sampleResults() []driver.FixResult {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevInfo, diag.FmtTrailingWhitespace, "a.py", 2, "Trailing whitespace"))
	failed := diag.NewBag(4)
	failed.Add(diag.NewError(diag.IOReadFile, "b.py", "read b.py: denied"))
	return []driver.FixResult{
		{Path: "a.py", Destination: "a.py", Changed: true, Diagnostics: bag},
		{Path: "b.py", Err: &driver.IOError{Op: "read", Path: "b.py", Err: os.ErrPermission}, Diagnostics: failed},
		{Path: "c.py"},
	}
}

func TestRenderFixTextOverwrite(t *testing.T) {
	var out, errOut bytes.Buffer
	renderFixText(&out, &errOut, sampleResults(), fixFlags{overwrite: true})

	if out.String() != "reformatted a.py\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if strings.Contains(errOut.String(), "L1002") {
		t.Fatalf("info diagnostics must be hidden without --verbose: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "b.py: ERROR IO4001") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRenderFixTextNewFileAndVerbose(t *testing.T) {
	var out, errOut bytes.Buffer
	results := []driver.FixResult{sampleResults()[0]}
	results[0].Destination = "clean.py"
	renderFixText(&out, &errOut, results, fixFlags{verbose: true})

	if out.String() != "created clean.py\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "a.py:2: INFO L1002 Trailing whitespace") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRenderFixTextCheckAndQuiet(t *testing.T) {
	var out, errOut bytes.Buffer
	renderFixText(&out, &errOut, sampleResults(), fixFlags{check: true})
	if out.String() != "a.py\n" {
		t.Fatalf("check stdout = %q", out.String())
	}

	out.Reset()
	errOut.Reset()
	renderFixText(&out, &errOut, sampleResults(), fixFlags{overwrite: true, quiet: true})
	if out.Len() != 0 {
		t.Fatalf("quiet stdout = %q", out.String())
	}
	if errOut.String() != "fix: b.py: read b.py: permission denied\n" {
		t.Fatalf("quiet stderr = %q", errOut.String())
	}
}

func TestRenderFixJSON(t *testing.T) {
	var out bytes.Buffer
	if err := renderFixJSON(&out, sampleResults(), fixFlags{check: true}); err != nil {
		t.Fatalf("renderFixJSON: %v", err)
	}
	var payload []fixJSONResult
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload) != 3 || !payload[0].Changed || !payload[0].CheckRun {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload[1].Error == "" || len(payload[0].Diagnostics) != 1 || payload[0].Timing != nil {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestRenderFixShort(t *testing.T) {
	var out bytes.Buffer
	renderFixShort(&out, sampleResults())
	want := "info L1002 a.py:2 Trailing whitespace\nerror IO4001 b.py:0 read b.py: denied\n"
	if out.String() != want {
		t.Fatalf("short output = %q", out.String())
	}
}

func TestRenderFixStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	results := []driver.FixResult{{Path: "a.py", Formatted: []byte("x = 1\n")}, sampleResults()[1]}
	renderFixStdout(&out, &errOut, results)
	if out.String() != "x = 1\n" || !strings.HasPrefix(errOut.String(), "fix: b.py:") {
		t.Fatalf("stdout=%q stderr=%q", out.String(), errOut.String())
	}
}

func TestPrintFixTimings(t *testing.T) {
	results := []driver.FixResult{
		{Timing: observ.Report{TotalMS: 3, Phases: []observ.PhaseReport{{Name: "read", DurationMS: 1}, {Name: "write", DurationMS: 2}}}},
		{Timing: observ.Report{TotalMS: 1, Phases: []observ.PhaseReport{{Name: "read", DurationMS: 1}}}},
	}
	var out bytes.Buffer
	printFixTimings(&out, results)
	got := out.String()
	for _, want := range []string{"timings (2 files):", "read            2.0 ms", "total           4.0 ms"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestLoadedConfigDrivesFix(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("[rules]\ncomment_spacing = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := config.Resolve(filepath.Join(dir, config.FileName), dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	opts, err := driverOptions(newFixTestCmd(t), cfg)
	if err != nil {
		t.Fatalf("driverOptions: %v", err)
	}
	out, _, err := driver.Normalize([]byte("#x\n"), opts)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(out) != "# x\n" {
		t.Fatalf("got %q", out)
	}
}
