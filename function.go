package pyrt

import "sort"

// Kwargs holds keyword arguments by name.
type Kwargs map[string]Value

// NativeFunc is the signature of native code callable from generated
// programs.
type NativeFunc func(rt *Runtime, args []Value, kwargs Kwargs) (Value, error)

// Function is a callable value wrapping native code.
type Function struct {
	name string
	fn   NativeFunc
}

func (*Function) Kind() Kind { return KindFunction }
func (*Function) isValue()   {}

// NewFunction creates a Function.
func NewFunction(name string, fn NativeFunc) *Function {
	return &Function{name: name, fn: fn}
}

// Name returns the function's name.
func (f *Function) Name() string {
	return f.name
}

// Call invokes the function. A nil result from the native code is None.
func (f *Function) Call(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	r, err := f.fn(rt, args, kwargs)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return None, nil
	}
	return r, nil
}

// argAt returns the nth positional argument, or the keyword argument name if
// there are not that many positional arguments. The result is nil if neither
// is present.
func argAt(args []Value, kwargs Kwargs, n int, name string) (Value, bool) {
	if n < len(args) {
		return args[n], true
	}
	v, ok := kwargs[name]
	return v, ok
}

// checkKwargs fails with a TypeError on the first keyword argument, in name
// order, that is not allowed.
func checkKwargs(fname string, kwargs Kwargs, allowed ...string) error {
	if len(kwargs) == 0 {
		return nil
	}
	names := make([]string, 0, len(kwargs))
	for k := range kwargs {
		names = append(names, k)
	}
	sort.Strings(names)
outer:
	for _, k := range names {
		for _, a := range allowed {
			if k == a {
				continue outer
			}
		}
		return typeErrorf("%s() got an unexpected keyword argument '%s'", fname, k)
	}
	return nil
}

// checkDuplicate fails when an argument was given both positionally and by
// keyword.
func checkDuplicate(fname string, args []Value, kwargs Kwargs, n int, name string) error {
	if _, ok := kwargs[name]; ok && n < len(args) {
		return typeErrorf("argument for %s() given by name ('%s') and position (%d)", fname, name, n+1)
	}
	return nil
}
