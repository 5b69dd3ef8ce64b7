package interpreter

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Environment is a name-to-value binding set with an optional enclosing
// scope. Lookup, assignment and existence checks walk the parent chain
// outward. Closures keep their defining environment reachable, so a scope
// outlives its call frame for as long as any function value references it.
type Environment struct {
	valueMap  map[string]Value
	enclosing *Environment
}

func NewEnvironment(e *Environment) *Environment {
	// e is nil means top level
	return &Environment{
		valueMap:  make(map[string]Value),
		enclosing: e,
	}
}

// Define binds name in this scope, shadowing any same-named binding in an
// ancestor. Redeclaring in the same scope rebinds.
func (e *Environment) Define(name string, val Value) {
	e.valueMap[name] = val
}

func (e *Environment) Get(name string) (Value, error) {
	val, ok := e.valueMap[name]
	if ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return Value{}, &NameError{Name: name}
}

// Assign mutates the nearest enclosing scope that already defines name; it
// never creates a binding.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.valueMap[name]; ok {
		e.valueMap[name] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &NameError{Name: name}
}

func (e *Environment) Has(name string) bool {
	if _, ok := e.valueMap[name]; ok {
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.Has(name)
	}
	return false
}

// Names lists every visible binding, nearest scope first, sorted within
// each scope. The REPL uses it for tab completion.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	var out []string
	for env := e; env != nil; env = env.enclosing {
		names := maps.Keys(env.valueMap)
		slices.Sort(names)
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
