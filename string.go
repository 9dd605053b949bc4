package pyrt

import (
	"strings"
	"unicode"
)

// callStr dispatches a Str method.
func callStr(s Str, attr string, args []Value, kwargs Kwargs) (Value, error) {
	switch attr {
	case "split":
		return strSplit(s, args, kwargs)
	case "strip":
		if len(args) > 1 {
			return nil, arityErrorf("strip expected at most 1 argument, got %d", len(args))
		}
		if len(args) == 0 || args[0] == None {
			return Str(strings.TrimSpace(string(s))), nil
		}
		cut, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("strip arg must be None or str")
		}
		return Str(strings.Trim(string(s), string(cut))), nil
	case "lower":
		if len(args) != 0 {
			return nil, arityErrorf("lower() takes no arguments (%d given)", len(args))
		}
		return Str(strings.ToLower(string(s))), nil
	case "upper":
		if len(args) != 0 {
			return nil, arityErrorf("upper() takes no arguments (%d given)", len(args))
		}
		return Str(strings.ToUpper(string(s))), nil
	case "join":
		if len(args) != 1 {
			return nil, arityErrorf("join() takes exactly one argument (%d given)", len(args))
		}
		var parts []string
		err := Iterate(args[0], func(v Value) error {
			p, ok := v.(Str)
			if !ok {
				return typeErrorf("sequence item %d: expected str instance, %s found", len(parts), TypeName(v))
			}
			parts = append(parts, string(p))
			return nil
		})
		if err != nil {
			return nil, err
		}
		return Str(strings.Join(parts, string(s))), nil
	case "startswith", "endswith":
		if len(args) != 1 {
			return nil, arityErrorf("%s() takes exactly one argument (%d given)", attr, len(args))
		}
		fix, ok := args[0].(Str)
		if !ok {
			return nil, typeErrorf("%s first arg must be str, not %s", attr, TypeName(args[0]))
		}
		if attr == "startswith" {
			return Bool(strings.HasPrefix(string(s), string(fix))), nil
		}
		return Bool(strings.HasSuffix(string(s), string(fix))), nil
	}
	return nil, attributeError(s, attr)
}

// strSplit implements str.split(sep=None, maxsplit=-1).
func strSplit(s Str, args []Value, kwargs Kwargs) (Value, error) {
	if len(args) > 2 {
		return nil, arityErrorf("split() takes at most 2 arguments (%d given)", len(args))
	}
	if err := checkKwargs("split", kwargs, "sep", "maxsplit"); err != nil {
		return nil, err
	}
	sep, _ := argAt(args, kwargs, 0, "sep")
	maxv, _ := argAt(args, kwargs, 1, "maxsplit")
	max := -1
	if maxv != nil {
		n, ok := maxv.(Number)
		if !ok || n.IsFloat() {
			return nil, typeErrorf("'%s' object cannot be interpreted as an integer", TypeName(maxv))
		}
		max = int(n.Int64())
	}
	var parts []string
	switch sep := sep.(type) {
	case nil, NoneType:
		parts = fieldsN(string(s), max)
	case Str:
		if sep == "" {
			return nil, NewException(ValueError, "empty separator")
		}
		n := -1
		if max >= 0 {
			n = max + 1
		}
		parts = strings.SplitN(string(s), string(sep), n)
	default:
		return nil, typeErrorf("must be str or None, not %s", TypeName(sep))
	}
	r := make([]Value, len(parts))
	for i, p := range parts {
		r[i] = Str(p)
	}
	return NewList(r...), nil
}

// fieldsN splits s around runs of whitespace, making at most max splits when
// max is non-negative. The remainder after the last split keeps its trailing
// whitespace but loses its leading whitespace.
func fieldsN(s string, max int) []string {
	if max < 0 {
		return strings.Fields(s)
	}
	var r []string
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return r
		}
		if len(r) == max {
			return append(r, s)
		}
		k := strings.IndexFunc(s, unicode.IsSpace)
		if k < 0 {
			return append(r, s)
		}
		r = append(r, s[:k])
		s = s[k:]
	}
}
