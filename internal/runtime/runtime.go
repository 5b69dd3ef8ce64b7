// Package runtime ties the pipeline together: scan, parse, wrap in a
// document, evaluate. Both commands and the REPL share one Runtime.
package runtime

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/littlekuo/veil-treewalk/internal/document"
	"github.com/littlekuo/veil-treewalk/internal/interpreter"
	"github.com/littlekuo/veil-treewalk/internal/syntax"
	"github.com/littlekuo/veil-treewalk/internal/util"
)

// parseCacheSize bounds the parsed-program cache; REPL sessions and
// repeated runs of the same source skip re-scanning.
const parseCacheSize = 128

const (
	SourceExt   = ".veil"
	DocumentExt = ".vast"
)

type Runtime struct {
	interp *interpreter.Interpreter
	cache  *lru.Cache[string, *syntax.Program]
	diag   io.Writer
}

func New(input io.Reader, output io.Writer, diag io.Writer) *Runtime {
	cache, _ := lru.New[string, *syntax.Program](parseCacheSize)
	return &Runtime{
		interp: interpreter.NewInterpreter(input, output),
		cache:  cache,
		diag:   diag,
	}
}

// NewStd builds a runtime over the process stdio.
func NewStd() *Runtime {
	return New(os.Stdin, os.Stdout, os.Stderr)
}

// Interpreter exposes the persistent evaluator (the REPL keeps state in
// its global environment across lines).
func (r *Runtime) Interpreter() *interpreter.Interpreter {
	return r.interp
}

// Compile scans and parses src into a document. Scanner warnings and
// per-statement parse errors are reported to the diagnostic writer;
// failed statements are dropped and compilation still produces a
// document for what parsed.
func (r *Runtime) Compile(src string) *document.Document {
	program, tokens := r.frontEnd(src)
	return document.New(program, tokens, len(src))
}

// CompileFile compiles a source file and writes the document next to it
// (or to outPath when given). It returns the path written.
func (r *Runtime) CompileFile(inPath, outPath string) (string, *document.Document, error) {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return "", nil, err
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + DocumentExt
	}
	doc := r.Compile(string(src))
	data, err := doc.Encode()
	if err != nil {
		return "", nil, err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", nil, err
	}
	return outPath, doc, nil
}

// RunSource compiles and evaluates source text. Parsed programs are
// cached by source text, so a repeated line costs one map lookup.
func (r *Runtime) RunSource(src string) (interpreter.Value, error) {
	program, ok := r.cache.Get(src)
	if !ok {
		program, _ = r.frontEnd(src)
		r.cache.Add(src, program)
	}
	return r.interp.Interpret(program)
}

// RunFile dispatches on extension: source files compile and run, document
// files load (under either accepted shape) and run.
func (r *Runtime) RunFile(path string) (interpreter.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return interpreter.Value{}, err
	}
	switch filepath.Ext(path) {
	case SourceExt:
		return r.RunSource(string(data))
	case DocumentExt:
		return r.RunDocument(data)
	default:
		return interpreter.Value{}, fmt.Errorf("unsupported file type %q, use %s or %s",
			filepath.Ext(path), SourceExt, DocumentExt)
	}
}

// RunDocument evaluates a serialized document.
func (r *Runtime) RunDocument(data []byte) (interpreter.Value, error) {
	doc, err := document.Decode(data)
	if err != nil {
		return interpreter.Value{}, err
	}
	return r.interp.Interpret(doc.AST)
}

// frontEnd runs scanner and parser over src, reporting diagnostics.
func (r *Runtime) frontEnd(src string) (*syntax.Program, []syntax.Token) {
	scanner := syntax.NewScanner(src)
	tokens := scanner.ScanTokens()
	for _, warning := range scanner.Warnings() {
		fmt.Fprintln(r.diag, warning)
	}

	parser := syntax.NewParser(tokens)
	program := parser.Parse()
	for _, err := range parser.Errors() {
		var synErr *syntax.SyntaxError
		if errors.As(err, &synErr) {
			fmt.Fprint(r.diag, util.Snippet(src, "SYNTAX ERROR", synErr.Line, synErr.Column, synErr.Msg))
		} else {
			fmt.Fprintln(r.diag, err.Error())
		}
	}
	return program, tokens
}
