package util

import (
	"strings"
	"testing"
)

func TestSnippetShowsContextAndCaret(t *testing.T) {
	src := "var a = 1\nvar = 2\nvar b = 3"
	got := Snippet(src, "SYNTAX ERROR", 2, 5, "expect variable name")

	wantLines := []string{
		"SYNTAX ERROR at 2:5: expect variable name",
		"",
		"   1 | var a = 1",
		"   2 | var = 2",
		"     |     ^",
		"   3 | var b = 3",
	}
	want := strings.Join(wantLines, "\n") + "\n"
	if got != want {
		t.Fatalf("snippet:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestSnippetAtEdges(t *testing.T) {
	got := Snippet("only line", "ERROR", 1, 1, "boom")
	if strings.Contains(got, "   0 |") || strings.Contains(got, "   2 |") {
		t.Fatalf("single-line snippet should have no context lines:\n%s", got)
	}
	if !strings.Contains(got, "   1 | only line") {
		t.Fatalf("missing source line:\n%s", got)
	}
}

func TestSnippetClampsOutOfRangePositions(t *testing.T) {
	got := Snippet("x", "ERROR", 99, -3, "msg")
	if !strings.Contains(got, "   1 | x") {
		t.Fatalf("clamped snippet:\n%s", got)
	}
}

func TestSnippetCaretPastEndOfLine(t *testing.T) {
	got := Snippet("ab", "ERROR", 1, 5, "unexpected end of input")
	caretLine := ""
	for _, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(line, "^") {
			caretLine = line
		}
	}
	if caretLine != "     |     ^" {
		t.Fatalf("caret line: %q", caretLine)
	}
}

func TestCaretPadCountsWideRunes(t *testing.T) {
	// two fullwidth runes before the caret occupy four cells
	if pad := caretPad("日本x", 3); pad != 4 {
		t.Fatalf("wide-rune pad: %d", pad)
	}
	if pad := caretPad("abc", 3); pad != 2 {
		t.Fatalf("ascii pad: %d", pad)
	}
}
