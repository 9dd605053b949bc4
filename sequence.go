package pyrt

import (
	"strings"
	"unicode/utf8"
)

// Len returns the length of a Str, List, or Tuple. Strs are measured in code
// points.
func Len(v Value) (int, error) {
	switch v := v.(type) {
	case Str:
		return utf8.RuneCountInString(string(v)), nil
	case *List:
		return v.Len(), nil
	case Tuple:
		return len(v.elems), nil
	}
	return 0, typeErrorf("object of type '%s' has no len()", TypeName(v))
}

// Index returns seq[i]. Negative indices count from the end.
func Index(seq, i Value) (Value, error) {
	switch s := seq.(type) {
	case *List:
		n, err := indexArg("list", i)
		if err != nil {
			return nil, err
		}
		return s.At(n)
	case Tuple:
		n, err := indexArg("tuple", i)
		if err != nil {
			return nil, err
		}
		return s.At(n)
	case Str:
		n, err := indexArg("string", i)
		if err != nil {
			return nil, err
		}
		r := []rune(string(s))
		k, ok := adjustIndex(n, len(r))
		if !ok {
			return nil, NewException(IndexError, "string index out of range")
		}
		return Str(r[k]), nil
	}
	return nil, typeErrorf("'%s' object is not subscriptable", TypeName(seq))
}

func indexArg(what string, i Value) (int, error) {
	n, ok := i.(Number)
	if !ok || n.float {
		return 0, typeErrorf("%s indices must be integers or slices, not %s", what, TypeName(i))
	}
	return int(n.i), nil
}

// adjustIndex maps a possibly negative index onto [0, n).
func adjustIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Slice returns seq[lower:upper:step]. Any bound may be nil or None to take
// its default. The result is a new List, Tuple, or Str that shares no storage
// with seq.
func Slice(seq, lower, upper, step Value) (Value, error) {
	switch s := seq.(type) {
	case *List:
		items, release, err := s.borrow()
		if err != nil {
			return nil, err
		}
		defer release()
		idx, err := sliceIndices(len(items), lower, upper, step)
		if err != nil {
			return nil, err
		}
		r := make([]Value, len(idx))
		for k, i := range idx {
			r[k] = items[i]
		}
		return NewList(r...), nil
	case Tuple:
		idx, err := sliceIndices(len(s.elems), lower, upper, step)
		if err != nil {
			return nil, err
		}
		r := make([]Value, len(idx))
		for k, i := range idx {
			r[k] = s.elems[i]
		}
		return Tuple{elems: r}, nil
	case Str:
		rs := []rune(string(s))
		idx, err := sliceIndices(len(rs), lower, upper, step)
		if err != nil {
			return nil, err
		}
		r := make([]rune, len(idx))
		for k, i := range idx {
			r[k] = rs[i]
		}
		return Str(r), nil
	}
	return nil, typeErrorf("'%s' object is not subscriptable", TypeName(seq))
}

// sliceIndices computes the positions selected by a slice of a sequence of
// length n, in selection order.
func sliceIndices(n int, lower, upper, step Value) ([]int, error) {
	st, ok, err := sliceArg(step)
	if err != nil {
		return nil, err
	}
	if !ok {
		st = 1
	}
	if st == 0 {
		return nil, NewException(ValueError, "slice step cannot be zero")
	}
	var lo, hi int
	if st > 0 {
		lo, hi = 0, n
	} else {
		lo, hi = n-1, -1
	}
	if v, ok, err := sliceArg(lower); err != nil {
		return nil, err
	} else if ok {
		lo = clampSlice(v, n, st)
	}
	if v, ok, err := sliceArg(upper); err != nil {
		return nil, err
	} else if ok {
		hi = clampSlice(v, n, st)
	}
	// Count first so that stepping past the bound can't overflow.
	var k int
	switch {
	case st > 0 && lo < hi:
		k = (hi-lo-1)/st + 1
	case st < 0 && lo > hi:
		k = 1 - (lo-hi-1)/st
	}
	r := make([]int, k)
	for j := range r {
		r[j] = lo + j*st
	}
	return r, nil
}

// clampSlice normalizes a slice bound. Negative bounds count from the end;
// the result lies in [0, n] for positive steps and [-1, n-1] for negative.
func clampSlice(v, n, step int) int {
	if v < 0 {
		v += n
		if v < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return v
	}
	if step < 0 && v >= n {
		return n - 1
	}
	if v > n {
		return n
	}
	return v
}

// sliceArg interprets one slice bound. ok is false for nil or None.
func sliceArg(v Value) (n int, ok bool, err error) {
	switch x := v.(type) {
	case nil, NoneType:
		return 0, false, nil
	case Number:
		if !x.float {
			return int(x.i), true, nil
		}
	}
	return 0, false, typeErrorf("slice indices must be integers or None")
}

// Min returns the least element of a Str, List, or Tuple. It is a ValueError
// for the sequence to be empty and a TypeError for its elements not to be
// mutually ordered.
func Min(seq Value) (Value, error) {
	switch s := seq.(type) {
	case *List:
		items, release, err := s.borrow()
		if err != nil {
			return nil, err
		}
		defer release()
		return minOf(items)
	case Tuple:
		return minOf(s.elems)
	case Str:
		if s == "" {
			return nil, NewException(ValueError, "min() arg is an empty sequence")
		}
		m := rune(utf8.MaxRune + 1)
		for _, r := range string(s) {
			if r < m {
				m = r
			}
		}
		return Str(m), nil
	}
	return nil, typeErrorf("'%s' object is not iterable", TypeName(seq))
}

// minOf reduces vs pairwise, keeping the earliest of equal elements.
func minOf(vs []Value) (Value, error) {
	if len(vs) == 0 {
		return nil, NewException(ValueError, "min() arg is an empty sequence")
	}
	m := vs[0]
	for _, v := range vs[1:] {
		lt, err := Less(v, m)
		if err != nil {
			return nil, err
		}
		if lt {
			m = v
		}
	}
	return m, nil
}

// Contains reports whether v is an element of seq. For a Str, v must be a Str
// and the test is for a substring. Elements of a different variant than v are
// unequal to it.
func Contains(seq, v Value) (bool, error) {
	switch s := seq.(type) {
	case *List:
		items, release, err := s.borrow()
		if err != nil {
			return false, err
		}
		defer release()
		return containsElem(items, v)
	case Tuple:
		return containsElem(s.elems, v)
	case Str:
		sub, ok := v.(Str)
		if !ok {
			return false, typeErrorf("'in <string>' requires string as left operand, not %s", TypeName(v))
		}
		return strings.Contains(string(s), string(sub)), nil
	}
	return false, typeErrorf("argument of type '%s' is not iterable", TypeName(seq))
}

func containsElem(vs []Value, v Value) (bool, error) {
	_, ok, err := findElem(vs, v)
	return ok, err
}

// findElem returns the position of the first element equal to v.
func findElem(vs []Value, v Value) (int, bool, error) {
	for i, e := range vs {
		if !sameVariant(e, v) {
			continue
		}
		eq, err := Equal(e, v)
		if err != nil {
			return 0, false, err
		}
		if eq {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// countElem counts the elements equal to v.
func countElem(vs []Value, v Value) (int, error) {
	n := 0
	for _, e := range vs {
		if !sameVariant(e, v) {
			continue
		}
		eq, err := Equal(e, v)
		if err != nil {
			return 0, err
		}
		if eq {
			n++
		}
	}
	return n, nil
}

// Iterate calls fn with each element of an iterable: the characters of a Str,
// the elements of a List or Tuple, or the remaining lines of a readable
// stream. A List is borrowed for the whole iteration, so mutating it from fn
// fails with a RuntimeError.
func Iterate(v Value, fn func(Value) error) error {
	switch s := v.(type) {
	case Str:
		for _, r := range string(s) {
			if err := fn(Str(r)); err != nil {
				return err
			}
		}
		return nil
	case *List:
		return s.Iter(func(_ int, e Value) error { return fn(e) })
	case Tuple:
		for _, e := range s.elems {
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	case *TextIOWrapper:
		for {
			line, err := s.ReadLine()
			if err != nil {
				return err
			}
			if line == "" {
				return nil
			}
			if err := fn(Str(line)); err != nil {
				return err
			}
		}
	}
	return typeErrorf("'%s' object is not iterable", TypeName(v))
}

// collect gathers the elements of an iterable into a new slice.
func collect(v Value) ([]Value, error) {
	var r []Value
	err := Iterate(v, func(e Value) error {
		r = append(r, e)
		return nil
	})
	return r, err
}

// SetIndex assigns seq[i] = v. Only a List supports item assignment.
func SetIndex(seq, i, v Value) error {
	l, ok := seq.(*List)
	if !ok {
		return typeErrorf("'%s' object does not support item assignment", TypeName(seq))
	}
	k, err := indexArg("list", i)
	if err != nil {
		return err
	}
	return l.SetAt(k, v)
}
