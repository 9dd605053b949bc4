package pyrt

import (
	"math"
	"strconv"
)

// Number is an Integer or a Float. Integers are 64 bits and wrap on overflow.
type Number struct {
	i     int64
	f     float64
	float bool
}

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

// Int creates an Integer.
func Int(i int64) Number {
	return Number{i: i}
}

// Float creates a Float.
func Float(f float64) Number {
	return Number{f: f, float: true}
}

// IsFloat reports whether n is a Float.
func (n Number) IsFloat() bool {
	return n.float
}

// Int64 returns n as an integer, truncating a Float toward zero.
func (n Number) Int64() int64 {
	if n.float {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns n as a float.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

// String formats n the way the modeled language prints numbers.
func (n Number) String() string {
	if n.float {
		return formatFloat(n.f)
	}
	return strconv.FormatInt(n.i, 10)
}

// formatFloat produces the shortest representation that round-trips, using
// positional notation for exponents in [-4, 16) and always showing a decimal
// point or exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	k := len(e) - 1
	for e[k] != 'e' {
		k--
	}
	exp, _ := strconv.Atoi(e[k+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}

// arith applies a binary numeric operator. The ints function is used when
// both operands are Integers; otherwise both are promoted to Float.
func arith(op string, a, b Value, ints func(x, y int64) (Value, error), floats func(x, y float64) (Value, error)) (Value, error) {
	x, ok := a.(Number)
	if !ok {
		return nil, unsupported(op, a, b)
	}
	y, ok := b.(Number)
	if !ok {
		return nil, unsupported(op, a, b)
	}
	if !x.float && !y.float && ints != nil {
		return ints(x.i, y.i)
	}
	return floats(x.Float64(), y.Float64())
}

func unsupported(op string, a, b Value) error {
	return typeErrorf("unsupported operand type(s) for %s: '%s' and '%s'", op, TypeName(a), TypeName(b))
}

// Add computes a + b. Two Strs concatenate.
func Add(a, b Value) (Value, error) {
	if s, ok := a.(Str); ok {
		if t, ok := b.(Str); ok {
			return s + t, nil
		}
		return nil, typeErrorf("can only concatenate str (not \"%s\") to str", TypeName(b))
	}
	return arith("+", a, b,
		func(x, y int64) (Value, error) { return Int(x + y), nil },
		func(x, y float64) (Value, error) { return Float(x + y), nil },
	)
}

// Sub computes a - b.
func Sub(a, b Value) (Value, error) {
	return arith("-", a, b,
		func(x, y int64) (Value, error) { return Int(x - y), nil },
		func(x, y float64) (Value, error) { return Float(x - y), nil },
	)
}

// Mul computes a * b.
func Mul(a, b Value) (Value, error) {
	return arith("*", a, b,
		func(x, y int64) (Value, error) { return Int(x * y), nil },
		func(x, y float64) (Value, error) { return Float(x * y), nil },
	)
}

// Div computes a / b. The result is always a Float.
func Div(a, b Value) (Value, error) {
	return arith("/", a, b, nil, func(x, y float64) (Value, error) {
		if y == 0 {
			return nil, NewException(ZeroDivisionError, "division by zero")
		}
		return Float(x / y), nil
	})
}

// FloorDiv computes a // b, rounding toward negative infinity.
func FloorDiv(a, b Value) (Value, error) {
	return arith("//", a, b,
		func(x, y int64) (Value, error) {
			if y == 0 {
				return nil, NewException(ZeroDivisionError, "integer division or modulo by zero")
			}
			q := x / y
			if x%y != 0 && (x < 0) != (y < 0) {
				q--
			}
			return Int(q), nil
		},
		func(x, y float64) (Value, error) {
			if y == 0 {
				return nil, NewException(ZeroDivisionError, "float floor division by zero")
			}
			return Float(math.Floor(x / y)), nil
		},
	)
}

// Mod computes a % b. A non-zero result has the sign of b.
func Mod(a, b Value) (Value, error) {
	return arith("%", a, b,
		func(x, y int64) (Value, error) {
			if y == 0 {
				return nil, NewException(ZeroDivisionError, "integer division or modulo by zero")
			}
			r := x % y
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			return Int(r), nil
		},
		func(x, y float64) (Value, error) {
			if y == 0 {
				return nil, NewException(ZeroDivisionError, "float modulo")
			}
			r := math.Mod(x, y)
			if r != 0 && (r < 0) != (y < 0) {
				r += y
			}
			if r == 0 {
				r = math.Copysign(0, y)
			}
			return Float(r), nil
		},
	)
}

// Pow computes a ** b. An Integer raised to a negative Integer is a Float.
func Pow(a, b Value) (Value, error) {
	return arith("**", a, b,
		func(x, y int64) (Value, error) {
			if y < 0 {
				if x == 0 {
					return nil, NewException(ZeroDivisionError, "0.0 cannot be raised to a negative power")
				}
				return Float(math.Pow(float64(x), float64(y))), nil
			}
			r := int64(1)
			for y > 0 {
				if y&1 != 0 {
					r *= x
				}
				x *= x
				y >>= 1
			}
			return Int(r), nil
		},
		func(x, y float64) (Value, error) {
			if x == 0 && y < 0 {
				return nil, NewException(ZeroDivisionError, "0.0 cannot be raised to a negative power")
			}
			return Float(math.Pow(x, y)), nil
		},
	)
}

// bitwise applies an operator defined only on Integers.
func bitwise(op string, a, b Value, f func(x, y int64) (Value, error)) (Value, error) {
	x, ok := a.(Number)
	if !ok || x.float {
		return nil, unsupported(op, a, b)
	}
	y, ok := b.(Number)
	if !ok || y.float {
		return nil, unsupported(op, a, b)
	}
	return f(x.i, y.i)
}

// And computes a & b.
func And(a, b Value) (Value, error) {
	return bitwise("&", a, b, func(x, y int64) (Value, error) { return Int(x & y), nil })
}

// Or computes a | b.
func Or(a, b Value) (Value, error) {
	return bitwise("|", a, b, func(x, y int64) (Value, error) { return Int(x | y), nil })
}

// Xor computes a ^ b.
func Xor(a, b Value) (Value, error) {
	return bitwise("^", a, b, func(x, y int64) (Value, error) { return Int(x ^ y), nil })
}

// Shl computes a << b.
func Shl(a, b Value) (Value, error) {
	return bitwise("<<", a, b, func(x, y int64) (Value, error) {
		if y < 0 {
			return nil, NewException(ValueError, "negative shift count")
		}
		return Int(x << uint64(y)), nil
	})
}

// Shr computes a >> b, shifting in the sign bit.
func Shr(a, b Value) (Value, error) {
	return bitwise(">>", a, b, func(x, y int64) (Value, error) {
		if y < 0 {
			return nil, NewException(ValueError, "negative shift count")
		}
		return Int(x >> uint64(y)), nil
	})
}

// Neg computes -a.
func Neg(a Value) (Value, error) {
	x, ok := a.(Number)
	if !ok {
		return nil, typeErrorf("bad operand type for unary -: '%s'", TypeName(a))
	}
	if x.float {
		return Float(-x.f), nil
	}
	return Int(-x.i), nil
}

// Pos computes +a.
func Pos(a Value) (Value, error) {
	x, ok := a.(Number)
	if !ok {
		return nil, typeErrorf("bad operand type for unary +: '%s'", TypeName(a))
	}
	return x, nil
}

// Invert computes ~a.
func Invert(a Value) (Value, error) {
	x, ok := a.(Number)
	if !ok || x.float {
		return nil, typeErrorf("bad operand type for unary ~: '%s'", TypeName(a))
	}
	return Int(^x.i), nil
}
