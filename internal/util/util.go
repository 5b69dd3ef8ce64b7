package util

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

func WarningMsg(line int, column int, message string) string {
	return fmt.Sprintf("[line %d, column %d] Warning: %s", line, column, message)
}

// Snippet renders a caret-annotated excerpt of src around the 1-based
// line/column, with one line of context on each side:
//
//	SYNTAX ERROR at 3:12: unexpected token ')'
//
//	   2 | var x = (1 + 2
//	   3 |              )
//	     |            ^
//	   4 | print(x)
//
// Out-of-range positions are clamped so rendering never fails.
func Snippet(src string, header string, line int, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad(lineTxt, col)))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// caretPad counts terminal cells occupied by the text before the caret
// column, so the caret stays aligned when the line holds wide runes.
func caretPad(lineTxt string, col int) int {
	pad := 0
	i := 1
	for _, r := range lineTxt {
		if i >= col {
			break
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			pad += 2
		default:
			pad++
		}
		i++
	}
	// columns past the end of the line still get a caret
	if i < col {
		pad += col - i
	}
	return pad
}
