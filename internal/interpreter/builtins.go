package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// defineBuiltins pre-populates the top-level environment.
func defineBuiltins(env *Environment) {
	for _, b := range []*Builtin{
		{Name: "print", Fn: builtinPrint},
		{Name: "input", Fn: builtinInput},
		{Name: "len", Fn: builtinLen},
		{Name: "type", Fn: builtinType},
		{Name: "str", Fn: builtinStr},
		{Name: "num", Fn: builtinNum},
	} {
		env.Define(b.Name, Native(b))
	}
}

func builtinPrint(i *Interpreter, args []Value) (Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.String())
	}
	fmt.Fprintln(i.output, strings.Join(parts, " "))
	return Null(), nil
}

// input blocks until a line is available; at end of input it yields null.
func builtinInput(i *Interpreter, args []Value) (Value, error) {
	if len(args) > 0 {
		fmt.Fprint(i.output, args[0].String())
	}
	line, err := i.input.ReadString('\n')
	if err != nil && line == "" {
		return Null(), nil
	}
	line = strings.TrimRight(line, "\r\n")
	return Str(line), nil
}

func builtinLen(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, typeErrorf("len() requires at least 1 argument")
	}
	if args[0].Tag != TAG_STRING {
		return Value{}, typeErrorf("len() not supported for %s", args[0].TypeName())
	}
	return Int(int64(utf8.RuneCountInString(args[0].Data.(string)))), nil
}

func builtinType(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, typeErrorf("type() requires at least 1 argument")
	}
	return Str(args[0].TypeName()), nil
}

func builtinStr(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 1 {
		return Str(""), nil
	}
	return Str(args[0].String()), nil
}

// num converts a value to a number: a string spelled with '.' becomes a
// float, otherwise an integer; booleans become 1 or 0; numbers pass
// through unchanged.
func builtinNum(_ *Interpreter, args []Value) (Value, error) {
	if len(args) < 1 {
		return Int(0), nil
	}
	arg := args[0]
	switch arg.Tag {
	case TAG_NUMBER:
		return arg, nil
	case TAG_BOOLEAN:
		if arg.Data.(bool) {
			return Int(1), nil
		}
		return Int(0), nil
	case TAG_STRING:
		text := strings.TrimSpace(arg.Data.(string))
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return Value{}, typeErrorf("cannot convert %q to number", arg.Data.(string))
			}
			return Float(f), nil
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, typeErrorf("cannot convert %q to number", arg.Data.(string))
		}
		return Int(n), nil
	}
	return Value{}, typeErrorf("cannot convert %s to number", arg.TypeName())
}
