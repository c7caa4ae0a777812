package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pepfix/internal/diag"
	"pepfix/internal/lines"
)

// goldenOptions maps a fixture name to the options it is run with.
var goldenOptions = map[string]Options{
	"comments":   {CommentSpacing: true},
	"decorators": {SkipDecorators: true},
}

func TestNormalizeGolden(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}

	ran := 0
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".input") {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".input")
		ran++
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(filepath.Join("testdata", name+".input"))
			if err != nil {
				t.Fatalf("read %s.input: %v", name, err)
			}
			want, err := os.ReadFile(filepath.Join("testdata", name+".golden"))
			if err != nil {
				t.Fatalf("read %s.golden: %v", name, err)
			}
			opts := goldenOptions[name]

			got, _, err := Normalize(input, opts)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if string(got) != string(want) {
				t.Fatalf("output mismatch:\nwant:\n%q\n\ngot:\n%q", want, got)
			}

			again, bag, err := Normalize(got, opts)
			if err != nil {
				t.Fatalf("second Normalize: %v", err)
			}
			if string(again) != string(got) {
				t.Fatalf("not idempotent:\nfirst:\n%q\n\nsecond:\n%q", got, again)
			}
			if bag.Len() != 0 {
				t.Fatalf("second pass reported %d diagnostics", bag.Len())
			}

			checkDiagGolden(t, name, input, opts)
		})
	}
	if ran == 0 {
		t.Fatalf("no golden fixtures found")
	}
}

// checkDiagGolden compares the short diagnostics of a fixture with
// <name>.diag when that file exists.
func checkDiagGolden(t *testing.T, name string, input []byte, opts Options) {
	t.Helper()
	want, err := os.ReadFile(filepath.Join("testdata", name+".diag"))
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		t.Fatalf("read %s.diag: %v", name, err)
	}

	bag := diag.NewBag(diag.DefaultMax)
	path := "testdata/" + name + ".input"
	if err := Run(lines.Parse(input), opts, diag.BagReporter{Bag: bag, Path: path}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := diag.FormatShortDiagnostics(bag.Items())
	if got != strings.TrimRight(string(want), "\n") {
		t.Fatalf("diagnostics mismatch:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
