package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

func compile(t *testing.T, src string) *Document {
	t.Helper()
	tokens := syntax.NewScanner(src).ScanTokens()
	parser := syntax.NewParser(tokens)
	program := parser.Parse()
	if errs := parser.Errors(); len(errs) != 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	return New(program, tokens, len(src))
}

func encodeDecode(t *testing.T, src string) *Document {
	t.Helper()
	data, err := compile(t, src).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func wantSameTree(t *testing.T, src string) {
	t.Helper()
	doc := encodeDecode(t, src)
	printer := syntax.AstPrinter{}
	want := printer.Print(compile(t, src).AST)
	got := printer.Print(doc.AST)
	if got != want {
		t.Fatalf("tree changed across encode/decode:\nsource: %s\nwant: %s\ngot:  %s", src, want, got)
	}
}

func TestRoundTripPreservesTree(t *testing.T) {
	sources := []string{
		"var x = 1 + 2 * 3",
		`var s = "hi" + "there"`,
		"func add(a, b) { return a + b }\nadd(1, 2)",
		"if (x < 0) { y = 1 } else if (x == 0) { y = 2 } else { y = 3 }",
		"while (i < 10) { if (i == 5) { break } i = i + 1 }",
		"var t = true\nvar f = false\nvar n = null",
		"-x ** 2\n!done\nf()(1)(2, 3)",
		"func f() { return }",
		"var uninitialized",
	}
	for _, src := range sources {
		wantSameTree(t, src)
	}
}

func TestRoundTripPreservesLiteralBacking(t *testing.T) {
	doc := encodeDecode(t, "42\n4.5\n4.0")
	values := make([]any, 0, 3)
	for _, stmt := range doc.AST.Body {
		lit := stmt.(*syntax.Expression).Expression.(*syntax.Literal)
		values = append(values, lit.Value)
	}
	if v, ok := values[0].(int64); !ok || v != 42 {
		t.Fatalf("42 decoded as %T %v", values[0], values[0])
	}
	if v, ok := values[1].(float64); !ok || v != 4.5 {
		t.Fatalf("4.5 decoded as %T %v", values[1], values[1])
	}
	// a literal spelled with '.' stays floating even when integral
	if v, ok := values[2].(float64); !ok || v != 4.0 {
		t.Fatalf("4.0 decoded as %T %v", values[2], values[2])
	}
}

func TestDecodeAcceptsBareProgram(t *testing.T) {
	data := []byte(`{
		"type": "Program",
		"body": [
			{"type": "VariableDeclaration", "name": "x",
			 "initializer": {"type": "Literal", "value": 7, "raw": "7"}},
			{"type": "ExpressionStatement",
			 "expression": {"type": "Identifier", "name": "x"}}
		]
	}`)
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("decode bare program: %v", err)
	}
	got := syntax.AstPrinter{}.Print(doc.AST)
	if got != "(var x 7)\nx" {
		t.Fatalf("bare program tree: %s", got)
	}
	if len(doc.Tokens) != 0 {
		t.Fatalf("bare program should carry no tokens, got %d", len(doc.Tokens))
	}
}

func TestDecodeRejectsUnknownNode(t *testing.T) {
	data := []byte(`{
		"type": "Program",
		"body": [{"type": "GotoStatement", "label": "x"}]
	}`)
	if _, err := Decode(data); err == nil {
		t.Fatal("unknown node kind should fail to decode")
	}
}

func TestMetadataSurvivesRoundTrip(t *testing.T) {
	src := "var x = 1"
	doc := encodeDecode(t, src)
	if doc.Metadata.CompilerVersion != Version {
		t.Fatalf("compiler_version: %q", doc.Metadata.CompilerVersion)
	}
	if doc.Metadata.Language != Language {
		t.Fatalf("language: %q", doc.Metadata.Language)
	}
	if doc.Metadata.SourceLength != len(src) {
		t.Fatalf("source_length: %d", doc.Metadata.SourceLength)
	}
}

func TestTokenRecordsUseWireNames(t *testing.T) {
	doc := compile(t, "x == 1")
	kinds := make([]string, 0, len(doc.Tokens))
	for _, rec := range doc.Tokens {
		kinds = append(kinds, rec.Type)
	}
	got := strings.Join(kinds, " ")
	if got != "IDENTIFIER EQUAL NUMBER EOF" {
		t.Fatalf("token kinds: %s", got)
	}
}

func TestRestoreTokensReparses(t *testing.T) {
	src := "var x = 1 + 2\nx * 3"
	doc := encodeDecode(t, src)
	tokens, err := doc.RestoreTokens()
	if err != nil {
		t.Fatalf("restore tokens: %v", err)
	}
	parser := syntax.NewParser(tokens)
	program := parser.Parse()
	if errs := parser.Errors(); len(errs) != 0 {
		t.Fatalf("reparse errors: %v", errs)
	}
	printer := syntax.AstPrinter{}
	if printer.Print(program) != printer.Print(doc.AST) {
		t.Fatal("restored tokens parse to a different tree")
	}
}

func TestEncodedShape(t *testing.T) {
	data, err := compile(t, "var x = 1").Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"ast", "tokens", "metadata"} {
		if _, ok := wire[key]; !ok {
			t.Fatalf("missing top-level key %q", key)
		}
	}
}
