package interpreter

import (
	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

// Function is a user-declared function value: its parameter list, body and
// the environment captured at declaration time. The closure is held by
// reference, so later mutations of the outer scope stay visible inside the
// body.
type Function struct {
	Name       string
	Parameters []string
	Body       []syntax.Stmt
	Closure    *Environment
}

func NewFunctionValue(decl *syntax.Function, closure *Environment) *Function {
	return &Function{
		Name:       decl.Name,
		Parameters: decl.Parameters,
		Body:       decl.Body,
		Closure:    closure,
	}
}

func (f *Function) Arity() int {
	return len(f.Parameters)
}

// Call binds arguments positionally in a fresh child of the closure — not
// of the caller's environment, which is what makes scoping static. Missing
// trailing arguments bind to null; extra arguments are dropped. Without an
// explicit return the result is null.
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for idx, param := range f.Parameters {
		if idx < len(args) {
			env.Define(param, args[idx])
		} else {
			env.Define(param, Null())
		}
	}

	for _, stmt := range f.Body {
		fl, err := i.exec(stmt, env)
		if err != nil {
			return Value{}, err
		}
		switch fl.kind {
		case flowReturn:
			return fl.value, nil
		case flowBreak:
			return Value{}, typeErrorf("'break' outside loop")
		case flowContinue:
			return Value{}, typeErrorf("'continue' outside loop")
		}
	}
	return Null(), nil
}

func (f *Function) String() string {
	return "<function " + f.Name + ">"
}

// Builtin is a host-implemented function; it receives the fully evaluated
// argument list and returns a properly tagged value.
type Builtin struct {
	Name string
	Fn   func(i *Interpreter, args []Value) (Value, error)
}

func (b *Builtin) String() string {
	return "<builtin " + b.Name + ">"
}
