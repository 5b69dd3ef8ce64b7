package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

// Decode parses a serialized document. Both accepted shapes load: the
// wrapped {ast, tokens, metadata} object, and a bare Program node at the
// top level (in which case tokens and metadata are empty).
func Decode(data []byte) (*Document, error) {
	var wrapped struct {
		AST      json.RawMessage `json:"ast"`
		Tokens   []TokenRecord   `json:"tokens"`
		Metadata Metadata        `json:"metadata"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	astData := wrapped.AST
	if astData == nil {
		// no enclosing `ast` key; the document is the Program itself
		astData = data
	}
	program, err := decodeProgram(astData)
	if err != nil {
		return nil, err
	}

	return &Document{
		AST:      program,
		Tokens:   wrapped.Tokens,
		Metadata: wrapped.Metadata,
	}, nil
}

func decodeProgram(data []byte) (*syntax.Program, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	// integer literals must survive decoding as integers
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid document: top level is not an object")
	}
	if kind, _ := node["type"].(string); kind != "Program" {
		return nil, fmt.Errorf("invalid document: expected Program node, got %q", node["type"])
	}
	body, err := decodeBody(node["body"])
	if err != nil {
		return nil, err
	}
	return syntax.NewProgram(body), nil
}

func decodeBody(raw any) ([]syntax.Stmt, error) {
	if raw == nil {
		return []syntax.Stmt{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid document: statement body is not an array")
	}
	body := make([]syntax.Stmt, 0, len(items))
	for _, item := range items {
		stmt, err := decodeStmt(item)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func decodeStmt(raw any) (syntax.Stmt, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid document: statement is not an object")
	}
	kind, _ := node["type"].(string)
	switch kind {
	case "VariableDeclaration":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		var initializer syntax.Expr
		if node["initializer"] != nil {
			initializer, err = decodeExpr(node["initializer"])
			if err != nil {
				return nil, err
			}
		}
		return syntax.NewVar(name, initializer), nil

	case "FunctionDeclaration":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		params, err := stringList(node["parameters"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(node["body"])
		if err != nil {
			return nil, err
		}
		return syntax.NewFunction(name, params, body), nil

	case "ExpressionStatement":
		expr, err := decodeExpr(node["expression"])
		if err != nil {
			return nil, err
		}
		return &syntax.Expression{Expression: expr}, nil

	case "IfStatement":
		condition, err := decodeExpr(node["condition"])
		if err != nil {
			return nil, err
		}
		thenBody, err := decodeBody(node["then_branch"])
		if err != nil {
			return nil, err
		}
		var elseBody []syntax.Stmt
		if node["else_branch"] != nil {
			elseBody, err = decodeBody(node["else_branch"])
			if err != nil {
				return nil, err
			}
		}
		return syntax.NewIf(condition, thenBody, elseBody), nil

	case "WhileStatement":
		condition, err := decodeExpr(node["condition"])
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(node["body"])
		if err != nil {
			return nil, err
		}
		return syntax.NewWhile(condition, body), nil

	case "ReturnStatement":
		var value syntax.Expr
		if node["value"] != nil {
			var err error
			value, err = decodeExpr(node["value"])
			if err != nil {
				return nil, err
			}
		}
		return &syntax.Return{Value: value}, nil

	case "BreakStatement":
		return &syntax.Break{}, nil

	case "ContinueStatement":
		return &syntax.Continue{}, nil
	}
	return nil, fmt.Errorf("invalid document: unknown statement type %q", kind)
}

func decodeExpr(raw any) (syntax.Expr, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid document: expression is not an object")
	}
	kind, _ := node["type"].(string)
	switch kind {
	case "Literal":
		rawText, _ := node["raw"].(string)
		value, err := decodeLiteralValue(node["value"], rawText)
		if err != nil {
			return nil, err
		}
		return &syntax.Literal{Value: value, Raw: rawText}, nil

	case "Identifier":
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return &syntax.Identifier{Name: name}, nil

	case "BinaryExpression":
		left, err := decodeExpr(node["left"])
		if err != nil {
			return nil, err
		}
		operator, err := stringField(node, "operator")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(node["right"])
		if err != nil {
			return nil, err
		}
		return syntax.NewBinary(left, operator, right), nil

	case "UnaryExpression":
		operator, err := stringField(node, "operator")
		if err != nil {
			return nil, err
		}
		operand, err := decodeExpr(node["operand"])
		if err != nil {
			return nil, err
		}
		return syntax.NewUnary(operator, operand), nil

	case "AssignmentExpression":
		left, err := decodeExpr(node["left"])
		if err != nil {
			return nil, err
		}
		ident, ok := left.(*syntax.Identifier)
		if !ok {
			return nil, fmt.Errorf("invalid document: assignment target is not an identifier")
		}
		right, err := decodeExpr(node["right"])
		if err != nil {
			return nil, err
		}
		return syntax.NewAssign(ident.Name, right), nil

	case "CallExpression":
		callee, err := decodeExpr(node["callee"])
		if err != nil {
			return nil, err
		}
		var args []syntax.Expr
		if node["arguments"] != nil {
			items, ok := node["arguments"].([]any)
			if !ok {
				return nil, fmt.Errorf("invalid document: call arguments are not an array")
			}
			for _, item := range items {
				arg, err := decodeExpr(item)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		return syntax.NewCall(callee, args), nil
	}
	return nil, fmt.Errorf("invalid document: unknown expression type %q", kind)
}

// An integral float marshals without a fraction part, so the literal's raw
// spelling also decides whether a bare number is floating.
func decodeLiteralValue(raw any, rawText string) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		return v, nil
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") || strings.Contains(rawText, ".") {
			return v.Float64()
		}
		return v.Int64()
	}
	return nil, fmt.Errorf("invalid document: unsupported literal value %v", raw)
}

func stringField(node map[string]any, key string) (string, error) {
	s, ok := node[key].(string)
	if !ok {
		return "", fmt.Errorf("invalid document: missing %q field", key)
	}
	return s, nil
}

func stringList(raw any) ([]string, error) {
	if raw == nil {
		return []string{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid document: parameter list is not an array")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("invalid document: parameter name is not a string")
		}
		out = append(out, s)
	}
	return out, nil
}
