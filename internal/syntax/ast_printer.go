package syntax

import (
	"fmt"
	"strings"
)

// AstPrinter renders a tree in a compact parenthesized form, one top-level
// statement per line. Useful for debugging and golden tests.
type AstPrinter struct{}

func (a AstPrinter) Print(program *Program) string {
	lines := make([]string, 0, len(program.Body))
	for _, stmt := range program.Body {
		lines = append(lines, a.PrintStmt(stmt))
	}
	return strings.Join(lines, "\n")
}

func (a AstPrinter) PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *Var:
		if s.Initializer == nil {
			return "(var " + s.Name + ")"
		}
		return "(var " + s.Name + " " + a.PrintExpr(s.Initializer) + ")"
	case *Function:
		return "(func " + s.Name + " (" + strings.Join(s.Parameters, " ") + ") " +
			a.printBody(s.Body) + ")"
	case *Expression:
		return a.PrintExpr(s.Expression)
	case *If:
		out := "(if " + a.PrintExpr(s.Condition) + " " + a.printBody(s.Then)
		if s.Else != nil {
			out += " " + a.printBody(s.Else)
		}
		return out + ")"
	case *While:
		return "(while " + a.PrintExpr(s.Condition) + " " + a.printBody(s.Body) + ")"
	case *Return:
		if s.Value == nil {
			return "(return)"
		}
		return "(return " + a.PrintExpr(s.Value) + ")"
	case *Break:
		return "(break)"
	case *Continue:
		return "(continue)"
	}
	return fmt.Sprintf("(unknown %T)", stmt)
}

func (a AstPrinter) PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "null"
		}
		if s, ok := e.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", e.Value)
	case *Identifier:
		return e.Name
	case *Binary:
		return a.parenthesize(e.Operator, e.Left, e.Right)
	case *Unary:
		return a.parenthesize(e.Operator, e.Operand)
	case *Assign:
		return "(= " + e.Name + " " + a.PrintExpr(e.Value) + ")"
	case *Call:
		return a.parenthesize("call "+a.PrintExpr(e.Callee), e.Arguments...)
	}
	return fmt.Sprintf("(unknown %T)", expr)
}

func (a AstPrinter) printBody(body []Stmt) string {
	parts := make([]string, 0, len(body))
	for _, stmt := range body {
		parts = append(parts, a.PrintStmt(stmt))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (a AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var builder strings.Builder

	builder.WriteString("(" + name)
	for _, expr := range exprs {
		builder.WriteString(" ")
		builder.WriteString(a.PrintExpr(expr))
	}
	builder.WriteString(")")

	return builder.String()
}
