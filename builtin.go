package pyrt

import (
	"math"
	"strconv"
	"strings"
)

// initBuiltins creates the builtin function table.
func (rt *Runtime) initBuiltins() {
	rt.builtins = Frame{
		"enumerate": NewFunction("enumerate", builtinEnumerate),
		"float":     NewFunction("float", builtinFloat),
		"int":       NewFunction("int", builtinInt),
		"len":       NewFunction("len", builtinLen),
		"min":       NewFunction("min", builtinMin),
		"open":      NewFunction("open", builtinOpen),
		"print":     NewFunction("print", builtinPrint),
		"str":       NewFunction("str", builtinStr),
	}
}

// builtinPrint is a builtin function.
//
// print writes the printed forms of its arguments separated by sep and
// followed by end to file, which defaults to standard output.
func builtinPrint(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if err := checkKwargs("print", kwargs, "end", "file", "flush", "sep"); err != nil {
		return nil, err
	}
	sep, err := optStr("sep", kwargs["sep"], " ")
	if err != nil {
		return nil, err
	}
	end, err := optStr("end", kwargs["end"], "\n")
	if err != nil {
		return nil, err
	}
	out := rt.stdout
	switch f := kwargs["file"].(type) {
	case nil, NoneType:
	case *TextIOWrapper:
		out = f
	default:
		return nil, NewExceptionf(AttributeError, "'%s' object has no attribute 'write'", TypeName(f))
	}
	var b strings.Builder
	for i, v := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(String(v))
	}
	b.WriteString(end)
	if err := out.Write(b.String()); err != nil {
		return nil, err
	}
	if fl, ok := kwargs["flush"]; ok {
		t, err := Truth(fl)
		if err != nil {
			return nil, err
		}
		if t {
			return None, out.Flush()
		}
	}
	return None, nil
}

// optStr returns the string value of an optional Str-or-None argument.
func optStr(name string, v Value, def string) (string, error) {
	switch v := v.(type) {
	case nil, NoneType:
		return def, nil
	case Str:
		return string(v), nil
	}
	return "", typeErrorf("%s must be None or a string, not %s", name, TypeName(v))
}

// builtinStr is a builtin function.
//
// str returns the printed form of its argument, or the empty string if there
// is none.
func builtinStr(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if err := checkKwargs("str", kwargs); err != nil {
		return nil, err
	}
	switch len(args) {
	case 0:
		return Str(""), nil
	case 1:
		return Str(String(args[0])), nil
	}
	return nil, arityErrorf("str() takes at most 1 argument (%d given)", len(args))
}

// builtinLen is a builtin function.
//
// len returns the length of a str, list, or tuple.
func builtinLen(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if err := checkKwargs("len", kwargs); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, arityErrorf("len() takes exactly one argument (%d given)", len(args))
	}
	n, err := Len(args[0])
	if err != nil {
		return nil, err
	}
	return Int(int64(n)), nil
}

// builtinMin is a builtin function.
//
// min with one argument returns the least element of that iterable, or
// default if it is empty and default is given. With several arguments, it
// returns the least of them.
func builtinMin(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if err := checkKwargs("min", kwargs, "default"); err != nil {
		return nil, err
	}
	def, hasDef := kwargs["default"]
	switch len(args) {
	case 0:
		return nil, arityErrorf("min expected at least 1 argument, got 0")
	case 1:
		vs, err := collect(args[0])
		if err != nil {
			return nil, err
		}
		if len(vs) == 0 && hasDef {
			return def, nil
		}
		return minOf(vs)
	}
	if hasDef {
		return nil, typeErrorf("Cannot specify a default for min() with multiple positional arguments")
	}
	return minOf(args)
}

// builtinInt is a builtin function.
//
// int converts a str or number to an integer. A str that does not hold a
// base-10 integer converts to default when it is given.
func builtinInt(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	x, def, err := convArgs("int", args, kwargs)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return Int(0), nil
	}
	switch x := x.(type) {
	case Number:
		if x.IsFloat() {
			f := x.Float64()
			if math.IsInf(f, 0) {
				return nil, NewException(ValueError, "cannot convert float infinity to integer")
			}
			if math.IsNaN(f) {
				return nil, NewException(ValueError, "cannot convert float NaN to integer")
			}
			return Int(int64(f)), nil
		}
		return x, nil
	case Bool:
		return Int(boolInt(x)), nil
	case Str:
		var i int64
		s, ok := stripUnderscores(strings.TrimSpace(string(x)))
		if ok {
			i, err = strconv.ParseInt(s, 10, 64)
		} else {
			err = strconv.ErrSyntax
		}
		if err == nil {
			return Int(i), nil
		}
		if def != nil {
			return def, nil
		}
		return nil, &Exception{Kind: ValueError, Msg: "invalid literal for int() with base 10: " + Repr(x), Err: err}
	}
	return nil, typeErrorf("int() argument must be a string or a number, not '%s'", TypeName(x))
}

// builtinFloat is a builtin function.
//
// float converts a str or number to a float. A str that does not hold a
// decimal number converts to default when it is given.
func builtinFloat(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	x, def, err := convArgs("float", args, kwargs)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return Float(0), nil
	}
	switch x := x.(type) {
	case Number:
		return Float(x.Float64()), nil
	case Bool:
		return Float(float64(boolInt(x))), nil
	case Str:
		s, ok := stripUnderscores(strings.TrimSpace(string(x)))
		// ParseFloat also accepts hexadecimal mantissas, which are not
		// decimal numbers.
		if ok && !strings.ContainsAny(s, "xXpP") {
			if f, err := strconv.ParseFloat(s, 64); err == nil || isRangeErr(err) {
				return Float(f), nil
			}
		}
		if def != nil {
			return def, nil
		}
		return nil, NewExceptionf(ValueError, "could not convert string to float: %s", Repr(x))
	}
	return nil, typeErrorf("float() argument must be a string or a number, not '%s'", TypeName(x))
}

// stripUnderscores removes the digit separators from a numeric literal. Each
// underscore must sit between two digits; ok is false otherwise.
func stripUnderscores(s string) (r string, ok bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b = append(b, s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return string(b), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// convArgs unpacks the arguments of int and float: the value to convert and
// the optional default, each positional or keyword.
func convArgs(fname string, args []Value, kwargs Kwargs) (x, def Value, err error) {
	if len(args) > 2 {
		return nil, nil, arityErrorf("%s() takes at most 2 arguments (%d given)", fname, len(args))
	}
	if err := checkKwargs(fname, kwargs, "default", "x"); err != nil {
		return nil, nil, err
	}
	if err := checkDuplicate(fname, args, kwargs, 0, "x"); err != nil {
		return nil, nil, err
	}
	if err := checkDuplicate(fname, args, kwargs, 1, "default"); err != nil {
		return nil, nil, err
	}
	x, _ = argAt(args, kwargs, 0, "x")
	def, _ = argAt(args, kwargs, 1, "default")
	return x, def, nil
}

// builtinEnumerate is a builtin function.
//
// enumerate returns a list of (index, element) tuples over a str, list,
// tuple, or readable stream, counting from start.
func builtinEnumerate(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if len(args) == 0 {
		return nil, arityErrorf("enumerate() missing required argument 'iterable'")
	}
	if len(args) > 2 {
		return nil, arityErrorf("enumerate() takes at most 2 arguments (%d given)", len(args))
	}
	if err := checkKwargs("enumerate", kwargs, "start"); err != nil {
		return nil, err
	}
	if err := checkDuplicate("enumerate", args, kwargs, 1, "start"); err != nil {
		return nil, err
	}
	start := int64(0)
	if v, ok := argAt(args, kwargs, 1, "start"); ok {
		n, ok := v.(Number)
		if !ok || n.IsFloat() {
			return nil, typeErrorf("'%s' object cannot be interpreted as an integer", TypeName(v))
		}
		start = n.Int64()
	}
	var r []Value
	err := Iterate(args[0], func(v Value) error {
		r = append(r, NewTuple(Int(start), v))
		start++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewList(r...), nil
}

// builtinOpen is a builtin function.
//
// open opens a file. The mode is scanned for r, w, a, and +; w truncates and
// creates. The encoding defaults to the runtime's.
func builtinOpen(rt *Runtime, args []Value, kwargs Kwargs) (Value, error) {
	if len(args) == 0 || len(args) > 3 {
		return nil, arityErrorf("open() takes from 1 to 3 positional arguments (%d given)", len(args))
	}
	if err := checkKwargs("open", kwargs, "encoding", "mode"); err != nil {
		return nil, err
	}
	if err := checkDuplicate("open", args, kwargs, 1, "mode"); err != nil {
		return nil, err
	}
	if err := checkDuplicate("open", args, kwargs, 2, "encoding"); err != nil {
		return nil, err
	}
	name, ok := args[0].(Str)
	if !ok {
		return nil, typeErrorf("expected str, bytes or os.PathLike object, not %s", TypeName(args[0]))
	}
	mv, _ := argAt(args, kwargs, 1, "mode")
	mode, err := optStr("mode", mv, "r")
	if err != nil {
		return nil, err
	}
	ev, _ := argAt(args, kwargs, 2, "encoding")
	enc, err := optStr("encoding", ev, rt.cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return openFile(string(name), mode, enc, rt.log)
}
