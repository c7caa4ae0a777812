package lines

import "testing"

func TestIsFuncDef(t *testing.T) {
	tests := []struct {
		line     string
		keywords []string
		want     bool
	}{
		{"def f():\n", nil, true},
		{"    def method(self):\n", nil, true},
		{"\tdef f(x):\n", nil, true},
		{"default = 1\n", nil, false},
		{"define()\n", nil, false},
		{"def\n", nil, false},
		{"# def f():\n", nil, false},
		{"async def f():\n", nil, false},
		{"async def f():\n", []string{"def", "async def"}, true},
		{"class A:\n", []string{"class"}, true},
		{"", nil, false},
	}
	for _, tt := range tests {
		if got := IsFuncDef(tt.line, tt.keywords); got != tt.want {
			t.Errorf("IsFuncDef(%q, %v) = %v, want %v", tt.line, tt.keywords, got, tt.want)
		}
	}
}

func TestLinePredicates(t *testing.T) {
	if !IsBlank("\n") || IsBlank("  \n") || IsBlank("") {
		t.Error("IsBlank must accept only the bare terminator")
	}
	if !IsWhitespaceOnly(" \t \n") || !IsWhitespaceOnly("") || IsWhitespaceOnly(" x\n") {
		t.Error("IsWhitespaceOnly mismatch")
	}
	if !IsComment("  # note\n") || !IsComment("#\n") || IsComment("x # trailing\n") {
		t.Error("IsComment mismatch")
	}
	if !IsDecorator("    @property\n") || IsDecorator("x @ y\n") {
		t.Error("IsDecorator mismatch")
	}
	if got := Indent("\t  # x\n"); got != "\t  " {
		t.Errorf("Indent() = %q", got)
	}
	if got := Content("abc\n"); got != "abc" {
		t.Errorf("Content() = %q", got)
	}
}
