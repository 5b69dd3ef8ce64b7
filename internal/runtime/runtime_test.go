package runtime

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/littlekuo/veil-treewalk/internal/interpreter"
)

func newTestRuntime() (*Runtime, *bytes.Buffer, *bytes.Buffer) {
	var out, diag bytes.Buffer
	return New(strings.NewReader(""), &out, &diag), &out, &diag
}

func TestRunSource(t *testing.T) {
	rt, out, _ := newTestRuntime()
	value, err := rt.RunSource(`print("hi")` + "\n1 + 2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if value.Data != int64(3) {
		t.Fatalf("result: %v", value)
	}
	if out.String() != "hi\n" {
		t.Fatalf("output: %q", out.String())
	}
}

func TestRunSourceStatePersistsAcrossCalls(t *testing.T) {
	rt, _, _ := newTestRuntime()
	if _, err := rt.RunSource("var x = 40"); err != nil {
		t.Fatalf("first line: %v", err)
	}
	value, err := rt.RunSource("x + 2")
	if err != nil {
		t.Fatalf("second line: %v", err)
	}
	if value.Data != int64(42) {
		t.Fatalf("result: %v", value)
	}
}

func TestRunSourceCachesParsedPrograms(t *testing.T) {
	rt, _, _ := newTestRuntime()
	src := "var n = 0\nn + 1"
	if _, err := rt.RunSource(src); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, ok := rt.cache.Get(src); !ok {
		t.Fatal("program should be cached after first run")
	}
	value, err := rt.RunSource(src)
	if err != nil {
		t.Fatalf("cached run: %v", err)
	}
	if value.Data != int64(1) {
		t.Fatalf("cached run result: %v", value)
	}
}

func TestCompileReportsSyntaxErrorsWithSnippet(t *testing.T) {
	rt, _, diag := newTestRuntime()
	doc := rt.Compile("var ok = 1\nvar = 2")
	if doc == nil {
		t.Fatal("compile should still produce a document")
	}
	if len(doc.AST.Body) != 1 {
		t.Fatalf("recovered statements: %d", len(doc.AST.Body))
	}
	report := diag.String()
	if !strings.Contains(report, "SYNTAX ERROR at 2:5") {
		t.Fatalf("diagnostic report: %q", report)
	}
	if !strings.Contains(report, "^") {
		t.Fatalf("report should carry a caret: %q", report)
	}
}

func TestCompileReportsScannerWarnings(t *testing.T) {
	rt, _, diag := newTestRuntime()
	rt.Compile("var x = 1 @")
	if !strings.Contains(diag.String(), "Warning: unknown character '@'") {
		t.Fatalf("diagnostics: %q", diag.String())
	}
}

func TestCompileFileThenRunFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog"+SourceExt)
	src := "func double(n) { return n * 2 }\ndouble(21)\n"
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	rt, _, _ := newTestRuntime()
	outPath, doc, err := rt.CompileFile(srcPath, "")
	if err != nil {
		t.Fatalf("compile file: %v", err)
	}
	if outPath != filepath.Join(dir, "prog"+DocumentExt) {
		t.Fatalf("output path: %q", outPath)
	}
	if len(doc.Tokens) == 0 {
		t.Fatal("document should carry the token sequence")
	}

	// running the source and the compiled document must agree
	fromSource, err := rt.RunFile(srcPath)
	if err != nil {
		t.Fatalf("run source file: %v", err)
	}
	fromDoc, err := rt.RunFile(outPath)
	if err != nil {
		t.Fatalf("run document file: %v", err)
	}
	if fromSource.Data != int64(42) || fromDoc.Data != int64(42) {
		t.Fatalf("results: %v, %v", fromSource, fromDoc)
	}
}

func TestRunFileRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	rt, _, _ := newTestRuntime()
	if _, err := rt.RunFile(path); err == nil {
		t.Fatal("unknown extension should be rejected")
	}
}

func TestRunDocumentAcceptsBareProgram(t *testing.T) {
	rt, _, _ := newTestRuntime()
	data := []byte(`{
		"type": "Program",
		"body": [
			{"type": "ExpressionStatement",
			 "expression": {"type": "BinaryExpression",
				"left": {"type": "Literal", "value": 6, "raw": "6"},
				"operator": "*",
				"right": {"type": "Literal", "value": 7, "raw": "7"}}}
		]
	}`)
	value, err := rt.RunDocument(data)
	if err != nil {
		t.Fatalf("run bare program: %v", err)
	}
	if value.Tag != interpreter.TAG_NUMBER || value.Data != int64(42) {
		t.Fatalf("result: %v", value)
	}
}

func TestRunDocumentRejectsGarbage(t *testing.T) {
	rt, _, _ := newTestRuntime()
	if _, err := rt.RunDocument([]byte(`{"ast": {"type": "Module"}}`)); err == nil {
		t.Fatal("wrong root node kind should be rejected")
	}
}
