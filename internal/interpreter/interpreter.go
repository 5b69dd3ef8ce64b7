package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

// flowKind is the outcome of executing a statement. return/break/continue
// are modeled as explicit outcomes propagated to the nearest enclosing
// construct instead of unwinding the Go call stack; they are control
// transfer, not errors.
type flowKind int

const (
	flowNormal flowKind = iota
	flowReturn
	flowBreak
	flowContinue
)

type flow struct {
	kind     flowKind
	value    Value
	hasValue bool
}

type Interpreter struct {
	globals *Environment
	input   *bufio.Reader
	output  io.Writer
}

// NewInterpreter builds an interpreter over the given stdio streams with a
// fresh top-level environment pre-populated with the builtins.
func NewInterpreter(input io.Reader, output io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineBuiltins(globals)
	return &Interpreter{
		globals: globals,
		input:   bufio.NewReader(input),
		output:  output,
	}
}

// Globals exposes the top-level environment; the REPL persists it across
// lines and reads it for completion.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Interpret executes each top-level statement in order and returns the
// value of the last evaluated top-level expression statement, or null. A
// return/break/continue reaching the top level is a runtime error.
func (i *Interpreter) Interpret(program *syntax.Program) (Value, error) {
	result := Null()
	for _, stmt := range program.Body {
		fl, err := i.exec(stmt, i.globals)
		if err != nil {
			return Value{}, err
		}
		switch fl.kind {
		case flowReturn:
			return Value{}, typeErrorf("'return' outside function")
		case flowBreak:
			return Value{}, typeErrorf("'break' outside loop")
		case flowContinue:
			return Value{}, typeErrorf("'continue' outside loop")
		}
		if fl.hasValue {
			result = fl.value
		}
	}
	return result, nil
}

func (i *Interpreter) exec(stmt syntax.Stmt, env *Environment) (flow, error) {
	switch s := stmt.(type) {
	case *syntax.Var:
		value := Null()
		if s.Initializer != nil {
			var err error
			value, err = i.eval(s.Initializer, env)
			if err != nil {
				return flow{}, err
			}
		}
		env.Define(s.Name, value)
		return flow{}, nil

	case *syntax.Function:
		// the defining environment is captured here, by reference
		env.Define(s.Name, Func(NewFunctionValue(s, env)))
		return flow{}, nil

	case *syntax.Expression:
		value, err := i.eval(s.Expression, env)
		if err != nil {
			return flow{}, err
		}
		return flow{value: value, hasValue: true}, nil

	case *syntax.If:
		condition, err := i.eval(s.Condition, env)
		if err != nil {
			return flow{}, err
		}
		if condition.IsTruthy() {
			return i.execBlock(s.Then, NewEnvironment(env))
		}
		if s.Else != nil {
			return i.execBlock(s.Else, NewEnvironment(env))
		}
		return flow{}, nil

	case *syntax.While:
		for {
			condition, err := i.eval(s.Condition, env)
			if err != nil {
				return flow{}, err
			}
			if !condition.IsTruthy() {
				return flow{}, nil
			}
			// fresh scope per iteration, so declarations don't leak
			// across iterations
			fl, err := i.execBlock(s.Body, NewEnvironment(env))
			if err != nil {
				return flow{}, err
			}
			switch fl.kind {
			case flowReturn:
				return fl, nil
			case flowBreak:
				return flow{}, nil
			}
			// flowContinue just re-checks the condition
		}

	case *syntax.Return:
		value := Null()
		if s.Value != nil {
			var err error
			value, err = i.eval(s.Value, env)
			if err != nil {
				return flow{}, err
			}
		}
		return flow{kind: flowReturn, value: value, hasValue: true}, nil

	case *syntax.Break:
		return flow{kind: flowBreak}, nil

	case *syntax.Continue:
		return flow{kind: flowContinue}, nil
	}

	return flow{}, fmt.Errorf("unknown statement type %T", stmt)
}

// execBlock runs a statement sequence in env, stopping early on any
// non-normal outcome and handing it to the caller.
func (i *Interpreter) execBlock(body []syntax.Stmt, env *Environment) (flow, error) {
	for _, stmt := range body {
		fl, err := i.exec(stmt, env)
		if err != nil {
			return flow{}, err
		}
		if fl.kind != flowNormal {
			return fl, nil
		}
	}
	return flow{}, nil
}

func (i *Interpreter) eval(expr syntax.Expr, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case nil:
			return Null(), nil
		case bool:
			return Bool(v), nil
		case int64:
			return Int(v), nil
		case float64:
			return Float(v), nil
		case string:
			return Str(v), nil
		}
		return Value{}, fmt.Errorf("unknown literal value %v", e.Value)

	case *syntax.Identifier:
		return env.Get(e.Name)

	case *syntax.Binary:
		left, err := i.eval(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := i.eval(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(e.Operator, left, right)

	case *syntax.Unary:
		operand, err := i.eval(e.Operand, env)
		if err != nil {
			return Value{}, err
		}
		return evalUnary(e.Operator, operand)

	case *syntax.Assign:
		value, err := i.eval(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		if err := env.Assign(e.Name, value); err != nil {
			return Value{}, err
		}
		return value, nil

	case *syntax.Call:
		callee, err := i.eval(e.Callee, env)
		if err != nil {
			return Value{}, err
		}
		args := make([]Value, 0, len(e.Arguments))
		for _, argNode := range e.Arguments {
			arg, err := i.eval(argNode, env)
			if err != nil {
				return Value{}, err
			}
			args = append(args, arg)
		}
		switch callee.Tag {
		case TAG_FUNCTION:
			return callee.Data.(*Function).Call(i, args)
		case TAG_BUILTIN:
			return callee.Data.(*Builtin).Fn(i, args)
		}
		return Value{}, typeErrorf("'%s' value is not callable", callee.TypeName())
	}

	return Value{}, fmt.Errorf("unknown expression type %T", expr)
}

func evalBinary(operator string, left, right Value) (Value, error) {
	switch operator {
	case "+":
		// string-dominant: if either side is a string, concatenate
		if left.Tag == TAG_STRING || right.Tag == TAG_STRING {
			return Str(left.String() + right.String()), nil
		}
		return arith(operator, left, right)
	case "-", "*", "/", "%", "**":
		return arith(operator, left, right)

	case "==":
		return Bool(valuesEqual(left, right)), nil
	case "!=":
		return Bool(!valuesEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return compare(operator, left, right)

	case "&&", "and":
		return Bool(left.IsTruthy() && right.IsTruthy()), nil
	case "||", "or":
		return Bool(left.IsTruthy() || right.IsTruthy()), nil
	}
	return Value{}, typeErrorf("unknown binary operator: %s", operator)
}

// arith implements the numeric operators. Two integer operands stay
// integer where the result is exact; any float operand promotes the whole
// operation to float.
func arith(operator string, left, right Value) (Value, error) {
	if left.Tag != TAG_NUMBER || right.Tag != TAG_NUMBER {
		return Value{}, typeErrorf("unsupported operand types for %s: %s and %s",
			operator, left.TypeName(), right.TypeName())
	}
	bothInt := left.isInt() && right.isInt()

	switch operator {
	case "+":
		if bothInt {
			return Int(left.Data.(int64) + right.Data.(int64)), nil
		}
		return Float(left.asFloat() + right.asFloat()), nil
	case "-":
		if bothInt {
			return Int(left.Data.(int64) - right.Data.(int64)), nil
		}
		return Float(left.asFloat() - right.asFloat()), nil
	case "*":
		if bothInt {
			return Int(left.Data.(int64) * right.Data.(int64)), nil
		}
		return Float(left.asFloat() * right.asFloat()), nil
	case "/":
		if right.asFloat() == 0 {
			return Value{}, &ZeroDivisionError{}
		}
		if bothInt {
			l, r := left.Data.(int64), right.Data.(int64)
			if l%r == 0 {
				return Int(l / r), nil
			}
		}
		return Float(left.asFloat() / right.asFloat()), nil
	case "%":
		if right.asFloat() == 0 {
			return Value{}, &ZeroDivisionError{}
		}
		if bothInt {
			return Int(left.Data.(int64) % right.Data.(int64)), nil
		}
		return Float(math.Mod(left.asFloat(), right.asFloat())), nil
	case "**":
		if bothInt && right.Data.(int64) >= 0 {
			return Int(intPow(left.Data.(int64), right.Data.(int64))), nil
		}
		return Float(math.Pow(left.asFloat(), right.asFloat())), nil
	}
	return Value{}, typeErrorf("unknown arithmetic operator: %s", operator)
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// valuesEqual pins the cross-type policy: values of different type tags
// are never equal; numbers compare numerically regardless of backing;
// functions compare by identity.
func valuesEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TAG_NULL:
		return true
	case TAG_NUMBER:
		if a.isInt() && b.isInt() {
			return a.Data.(int64) == b.Data.(int64)
		}
		return a.asFloat() == b.asFloat()
	case TAG_STRING:
		return a.Data.(string) == b.Data.(string)
	case TAG_BOOLEAN:
		return a.Data.(bool) == b.Data.(bool)
	default:
		// function values compare by identity
		return a.Data == b.Data
	}
}

// compare orders two numbers numerically or two strings lexicographically;
// any other pairing is a type error.
func compare(operator string, left, right Value) (Value, error) {
	if left.Tag == TAG_NUMBER && right.Tag == TAG_NUMBER {
		l, r := left.asFloat(), right.asFloat()
		switch operator {
		case "<":
			return Bool(l < r), nil
		case "<=":
			return Bool(l <= r), nil
		case ">":
			return Bool(l > r), nil
		case ">=":
			return Bool(l >= r), nil
		}
	}
	if left.Tag == TAG_STRING && right.Tag == TAG_STRING {
		l, r := left.Data.(string), right.Data.(string)
		switch operator {
		case "<":
			return Bool(l < r), nil
		case "<=":
			return Bool(l <= r), nil
		case ">":
			return Bool(l > r), nil
		case ">=":
			return Bool(l >= r), nil
		}
	}
	return Value{}, typeErrorf("'%s' not supported between %s and %s",
		operator, left.TypeName(), right.TypeName())
}

func evalUnary(operator string, operand Value) (Value, error) {
	switch operator {
	case "-":
		if operand.Tag != TAG_NUMBER {
			return Value{}, typeErrorf("unary '-' not supported for %s", operand.TypeName())
		}
		if operand.isInt() {
			return Int(-operand.Data.(int64)), nil
		}
		return Float(-operand.asFloat()), nil
	case "!", "not":
		return Bool(!operand.IsTruthy()), nil
	}
	return Value{}, typeErrorf("unknown unary operator: %s", operator)
}
