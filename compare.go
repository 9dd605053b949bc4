package pyrt

import "math"

// Equal reports whether a == b. Values of the same variant compare by
// content (Number across Integer and Float, List and Tuple element-wise) or,
// for classes, objects, functions, and streams, by identity. None is equal
// only to None and unequal to everything else. Any other pairing of variants
// is a TypeError.
func Equal(a, b Value) (bool, error) {
	return equal(a, b, 0)
}

// maxDepth bounds recursion through nested containers.
const maxDepth = 1000

func equal(a, b Value, depth int) (bool, error) {
	if depth > maxDepth {
		return false, NewException(RuntimeError, "maximum recursion depth exceeded in comparison")
	}
	if a.Kind() == KindNone || b.Kind() == KindNone {
		return a.Kind() == b.Kind(), nil
	}
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			if !x.float && !y.float {
				return x.i == y.i, nil
			}
			return x.Float64() == y.Float64(), nil
		}
	case Str:
		if y, ok := b.(Str); ok {
			return x == y, nil
		}
	case Bool:
		if y, ok := b.(Bool); ok {
			return x == y, nil
		}
	case *List:
		if y, ok := b.(*List); ok {
			if x == y {
				return true, nil
			}
			xs, rx, err := x.borrow()
			if err != nil {
				return false, err
			}
			defer rx()
			ys, ry, err := y.borrow()
			if err != nil {
				return false, err
			}
			defer ry()
			return equalElems(xs, ys, depth+1)
		}
	case Tuple:
		if y, ok := b.(Tuple); ok {
			return equalElems(x.elems, y.elems, depth+1)
		}
	case *Class:
		if y, ok := b.(*Class); ok {
			return x == y, nil
		}
	case *Object:
		if y, ok := b.(*Object); ok {
			return x == y, nil
		}
	case *Function:
		if y, ok := b.(*Function); ok {
			return x == y, nil
		}
	case *TextIOWrapper:
		if y, ok := b.(*TextIOWrapper); ok {
			return x == y, nil
		}
	case undefined:
		if _, ok := b.(undefined); ok {
			return true, nil
		}
	}
	return false, typeErrorf("'==' not supported between instances of '%s' and '%s'", TypeName(a), TypeName(b))
}

// NotEqual reports whether a != b.
func NotEqual(a, b Value) (bool, error) {
	eq, err := Equal(a, b)
	return !eq, err
}

func equalElems(xs, ys []Value, depth int) (bool, error) {
	if len(xs) != len(ys) {
		return false, nil
	}
	for i := range xs {
		eq, err := equal(xs[i], ys[i], depth)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// sameVariant reports whether a and b may be compared without a TypeError.
func sameVariant(a, b Value) bool {
	if a.Kind() == KindNone || b.Kind() == KindNone {
		return true
	}
	return a.Kind() == b.Kind()
}

// compare orders a and b, which must be both Numbers, both Strs, or both
// Bools. The result is -1, 0, or 1, or 2 if the values are unordered (NaN).
func compare(op string, a, b Value) (int, error) {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			if !x.float && !y.float {
				return cmpInt(x.i, y.i), nil
			}
			p, q := x.Float64(), y.Float64()
			switch {
			case math.IsNaN(p) || math.IsNaN(q):
				return 2, nil
			case p < q:
				return -1, nil
			case p > q:
				return 1, nil
			}
			return 0, nil
		}
	case Str:
		if y, ok := b.(Str); ok {
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			}
			return 0, nil
		}
	case Bool:
		if y, ok := b.(Bool); ok {
			return cmpInt(boolInt(x), boolInt(y)), nil
		}
	}
	return 0, typeErrorf("'%s' not supported between instances of '%s' and '%s'", op, TypeName(a), TypeName(b))
}

func cmpInt(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func boolInt(b Bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Less reports whether a < b.
func Less(a, b Value) (bool, error) {
	c, err := compare("<", a, b)
	return c == -1, err
}

// LessEqual reports whether a <= b.
func LessEqual(a, b Value) (bool, error) {
	c, err := compare("<=", a, b)
	if err != nil {
		return false, err
	}
	return c == -1 || c == 0, nil
}

// Greater reports whether a > b.
func Greater(a, b Value) (bool, error) {
	c, err := compare(">", a, b)
	return c == 1, err
}

// GreaterEqual reports whether a >= b.
func GreaterEqual(a, b Value) (bool, error) {
	c, err := compare(">=", a, b)
	if err != nil {
		return false, err
	}
	return c == 1 || c == 0, nil
}
