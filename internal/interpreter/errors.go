package interpreter

import "fmt"

// NameError reports an unresolved identifier in a get or assign.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}

// TypeError reports an operation unsupported for a value's type, including
// calling a non-callable value.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string {
	return e.Msg
}

func typeErrorf(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// ZeroDivisionError reports division or modulo by a zero right operand.
type ZeroDivisionError struct{}

func (e *ZeroDivisionError) Error() string {
	return "division by zero"
}
