package interpreter

import "strconv"

type ValueTag int

const (
	TAG_NULL ValueTag = iota
	TAG_NUMBER
	TAG_STRING
	TAG_BOOLEAN
	TAG_FUNCTION
	TAG_BUILTIN
)

var tagNames = map[ValueTag]string{
	TAG_NULL:     "null",
	TAG_NUMBER:   "number",
	TAG_STRING:   "string",
	TAG_BOOLEAN:  "boolean",
	TAG_FUNCTION: "function",
	TAG_BUILTIN:  "builtin_function",
}

// Value is the tagged runtime representation. Number values keep an int64
// or float64 backing under the same tag; operations produce new values
// rather than mutating in place.
type Value struct {
	Tag  ValueTag
	Data any
}

func Null() Value            { return Value{Tag: TAG_NULL} }
func Int(n int64) Value      { return Value{Tag: TAG_NUMBER, Data: n} }
func Float(f float64) Value  { return Value{Tag: TAG_NUMBER, Data: f} }
func Str(s string) Value     { return Value{Tag: TAG_STRING, Data: s} }
func Bool(b bool) Value      { return Value{Tag: TAG_BOOLEAN, Data: b} }
func Func(f *Function) Value { return Value{Tag: TAG_FUNCTION, Data: f} }
func Native(b *Builtin) Value {
	return Value{Tag: TAG_BUILTIN, Data: b}
}

// TypeName is the tag string reported by type() and used in diagnostics.
func (v Value) TypeName() string {
	return tagNames[v.Tag]
}

// IsTruthy applies the truthiness policy of conditionals, loops and logical
// operators: null, false, numeric zero and the empty string are falsy,
// everything else is truthy.
func (v Value) IsTruthy() bool {
	switch v.Tag {
	case TAG_NULL:
		return false
	case TAG_BOOLEAN:
		return v.Data.(bool)
	case TAG_NUMBER:
		if n, ok := v.Data.(int64); ok {
			return n != 0
		}
		return v.Data.(float64) != 0
	case TAG_STRING:
		return v.Data.(string) != ""
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Tag {
	case TAG_NULL:
		return "null"
	case TAG_BOOLEAN:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TAG_NUMBER:
		if n, ok := v.Data.(int64); ok {
			return strconv.FormatInt(n, 10)
		}
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case TAG_STRING:
		return v.Data.(string)
	case TAG_FUNCTION:
		return v.Data.(*Function).String()
	case TAG_BUILTIN:
		return v.Data.(*Builtin).String()
	}
	return "<unknown>"
}

// isInt reports whether a number value has an integer backing.
func (v Value) isInt() bool {
	_, ok := v.Data.(int64)
	return v.Tag == TAG_NUMBER && ok
}

// asFloat widens any number backing to float64.
func (v Value) asFloat() float64 {
	if n, ok := v.Data.(int64); ok {
		return float64(n)
	}
	return v.Data.(float64)
}
