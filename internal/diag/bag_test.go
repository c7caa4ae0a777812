package diag

import (
	"strings"
	"testing"
)

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		bag.Add(New(SevInfo, FmtTrailingWhitespace, "a.py", i+1, "trailing whitespace removed"))
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if NewBag(0).Cap() != DefaultMax {
		t.Fatalf("non-positive limit should fall back to %d", DefaultMax)
	}
	if NewBag(1 << 20).Cap() != ^uint16(0) {
		t.Fatalf("oversized limit should saturate")
	}
}

func TestBagSortAndCount(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevInfo, FmtBlankLinesBeforeDef, "b.py", 3, "x"))
	bag.Add(New(SevInfo, FmtTrailingWhitespace, "a.py", 7, "x"))
	bag.Add(NewError(IOReadFile, "a.py", "boom"))
	bag.Add(New(SevInfo, FmtTrailingWhitespace, "a.py", 2, "x"))
	bag.Sort()

	items := bag.Items()
	if items[0].Code != IOReadFile || items[1].Line != 2 || items[3].Path != "b.py" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}
	if got := bag.Count(FmtTrailingWhitespace); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestBagMergeRaisesLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevInfo, FmtCommentSpacing, "a.py", 1, "x"))
	b := NewBag(2)
	b.Add(New(SevInfo, FmtCommentSpacing, "b.py", 1, "x"))
	b.Add(New(SevInfo, FmtCommentSpacing, "b.py", 2, "x"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge kept %d diagnostics, want 3", a.Len())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		New(SevInfo, FmtBlankLinesBeforeDef, "./pkg/mod.py", 4, "inserted 2 blank lines\nbefore def"),
		New(SevInfo, FmtTrailingWhitespace, "pkg/mod.py", 1, "removed trailing whitespace"),
	}
	got := FormatShortDiagnostics(diags)
	want := strings.Join([]string{
		"info L1002 pkg/mod.py:1 removed trailing whitespace",
		"info D2002 pkg/mod.py:4 inserted 2 blank lines before def",
	}, "\n")
	if got != want {
		t.Fatalf("FormatShortDiagnostics:\n%s\nwant:\n%s", got, want)
	}
	if FormatShortDiagnostics(nil) != "" {
		t.Fatal("expected empty output for no diagnostics")
	}
}

func TestCodeID(t *testing.T) {
	if FmtTrailingWhitespace.ID() != "L1002" {
		t.Fatalf("ID = %s", FmtTrailingWhitespace.ID())
	}
	if IOWriteFile.ID() != "IO4002" {
		t.Fatalf("ID = %s", IOWriteFile.ID())
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unknown code title = %q", Code(9999).Title())
	}
}
