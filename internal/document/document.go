// Package document implements the compiled-program interchange format: a
// JSON object with `ast` (the Program tree), `tokens` (the full token
// sequence) and `metadata`. Loading also accepts a bare Program node with
// no enclosing `ast` key.
package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

const (
	Version  = "0.1.0"
	Language = "Veil"
)

type TokenRecord struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type Metadata struct {
	CompilerVersion string `json:"compiler_version"`
	Language        string `json:"language"`
	CompiledAt      string `json:"compiled_at,omitempty"`
	SourceLength    int    `json:"source_length,omitempty"`
}

type Document struct {
	AST      *syntax.Program
	Tokens   []TokenRecord
	Metadata Metadata
}

// New wraps a compilation result in a document.
func New(program *syntax.Program, tokens []syntax.Token, sourceLength int) *Document {
	records := make([]TokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		records = append(records, TokenRecord{
			Type:   syntax.TokenTypeStr[tok.TokenType],
			Value:  tok.Text,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}
	return &Document{
		AST:    program,
		Tokens: records,
		Metadata: Metadata{
			CompilerVersion: Version,
			Language:        Language,
			CompiledAt:      time.Now().UTC().Format(time.RFC3339),
			SourceLength:    sourceLength,
		},
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"ast":      encodeProgram(d.AST),
		"tokens":   d.Tokens,
		"metadata": d.Metadata,
	})
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// RestoreTokens rebuilds syntax tokens from the recorded sequence.
func (d *Document) RestoreTokens() ([]syntax.Token, error) {
	tokens := make([]syntax.Token, 0, len(d.Tokens))
	for _, rec := range d.Tokens {
		tk, ok := syntax.TokenTypeByName(rec.Type)
		if !ok {
			return nil, fmt.Errorf("unknown token kind %q", rec.Type)
		}
		tokens = append(tokens, syntax.NewToken(tk, rec.Value, rec.Line, rec.Column))
	}
	return tokens, nil
}

func encodeProgram(p *syntax.Program) map[string]any {
	return map[string]any{
		"type": "Program",
		"body": encodeBody(p.Body),
	}
}

func encodeBody(body []syntax.Stmt) []any {
	out := make([]any, 0, len(body))
	for _, stmt := range body {
		out = append(out, encodeStmt(stmt))
	}
	return out
}

func encodeStmt(stmt syntax.Stmt) map[string]any {
	switch s := stmt.(type) {
	case *syntax.Var:
		var init any
		if s.Initializer != nil {
			init = encodeExpr(s.Initializer)
		}
		return map[string]any{
			"type":        "VariableDeclaration",
			"name":        s.Name,
			"initializer": init,
		}
	case *syntax.Function:
		params := s.Parameters
		if params == nil {
			params = []string{}
		}
		return map[string]any{
			"type":       "FunctionDeclaration",
			"name":       s.Name,
			"parameters": params,
			"body":       encodeBody(s.Body),
		}
	case *syntax.Expression:
		return map[string]any{
			"type":       "ExpressionStatement",
			"expression": encodeExpr(s.Expression),
		}
	case *syntax.If:
		node := map[string]any{
			"type":        "IfStatement",
			"condition":   encodeExpr(s.Condition),
			"then_branch": encodeBody(s.Then),
		}
		if s.Else != nil {
			node["else_branch"] = encodeBody(s.Else)
		}
		return node
	case *syntax.While:
		return map[string]any{
			"type":      "WhileStatement",
			"condition": encodeExpr(s.Condition),
			"body":      encodeBody(s.Body),
		}
	case *syntax.Return:
		var value any
		if s.Value != nil {
			value = encodeExpr(s.Value)
		}
		return map[string]any{
			"type":  "ReturnStatement",
			"value": value,
		}
	case *syntax.Break:
		return map[string]any{"type": "BreakStatement"}
	case *syntax.Continue:
		return map[string]any{"type": "ContinueStatement"}
	}
	return map[string]any{"type": fmt.Sprintf("unknown %T", stmt)}
}

func encodeExpr(expr syntax.Expr) map[string]any {
	switch e := expr.(type) {
	case *syntax.Literal:
		return map[string]any{
			"type":  "Literal",
			"value": e.Value,
			"raw":   e.Raw,
		}
	case *syntax.Identifier:
		return map[string]any{
			"type": "Identifier",
			"name": e.Name,
		}
	case *syntax.Binary:
		return map[string]any{
			"type":     "BinaryExpression",
			"left":     encodeExpr(e.Left),
			"operator": e.Operator,
			"right":    encodeExpr(e.Right),
		}
	case *syntax.Unary:
		return map[string]any{
			"type":     "UnaryExpression",
			"operator": e.Operator,
			"operand":  encodeExpr(e.Operand),
		}
	case *syntax.Assign:
		return map[string]any{
			"type":  "AssignmentExpression",
			"left":  map[string]any{"type": "Identifier", "name": e.Name},
			"right": encodeExpr(e.Value),
		}
	case *syntax.Call:
		args := make([]any, 0, len(e.Arguments))
		for _, arg := range e.Arguments {
			args = append(args, encodeExpr(arg))
		}
		return map[string]any{
			"type":      "CallExpression",
			"callee":    encodeExpr(e.Callee),
			"arguments": args,
		}
	}
	return map[string]any{"type": fmt.Sprintf("unknown %T", expr)}
}
