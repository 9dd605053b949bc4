package pyrt_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zephyrtronium/pyrt"
	"github.com/zephyrtronium/pyrt/testutils"
)

// TestExceptionKinds tests matching exceptions by kind.
func TestExceptionKinds(t *testing.T) {
	kinds := []pyrt.ErrorKind{
		pyrt.NameError,
		pyrt.AttributeError,
		pyrt.TypeError,
		pyrt.IndexError,
		pyrt.ValueError,
		pyrt.ArityError,
		pyrt.IOError,
		pyrt.ZeroDivisionError,
		pyrt.RuntimeError,
	}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", pyrt.NewExceptionf(k, "message %d", 1))
			for _, other := range kinds {
				if got := errors.Is(err, other); got != (other == k) {
					t.Errorf("errors.Is(%v, %v) = %t", err, other, got)
				}
			}
			if got := pyrt.KindOf(err); got != k {
				t.Errorf("KindOf: have %v, want %v", got, k)
			}
			if got, want := errors.Unwrap(err).Error(), k.String()+": message 1"; got != want {
				t.Errorf("message: have %q, want %q", got, want)
			}
		})
	}
	if got := pyrt.KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf plain error: have %v, want 0", got)
	}
	if got := pyrt.KindOf(nil); got != 0 {
		t.Errorf("KindOf nil: have %v, want 0", got)
	}
}

// TestExceptionMessages tests the wording of common runtime errors.
func TestExceptionMessages(t *testing.T) {
	rt := testutils.Runtime()
	cases := map[string]struct {
		f    func() error
		want string
	}{
		"index": {
			func() error { _, err := pyrt.Index(list(), pyrt.Int(0)); return err },
			"IndexError: list index out of range",
		},
		"zeroStep": {
			func() error { _, err := pyrt.Slice(list(), nil, nil, pyrt.Int(0)); return err },
			"ValueError: slice step cannot be zero",
		},
		"emptyMin": {
			func() error { _, err := pyrt.Min(list()); return err },
			"ValueError: min() arg is an empty sequence",
		},
		"name": {
			func() error { _, err := rt.NewFrames().Lookup("x"); return err },
			"NameError: name 'x' is not defined",
		},
		"module": {
			func() error { _, err := rt.Import("nonexistent"); return err },
			"NameError: No module named 'nonexistent'",
		},
		"intLiteral": {
			func() error { _, err := testutils.Builtin("int", []pyrt.Value{pyrt.Str("x")}, nil)(rt); return err },
			"ValueError: invalid literal for int() with base 10: 'x'",
		},
		"enumerateNoArgs": {
			func() error { _, err := testutils.Builtin("enumerate", nil, nil)(rt); return err },
			"ArityError: enumerate() missing required argument 'iterable'",
		},
		"tupleIndex": {
			func() error { _, err := rt.CallMember(tuple(), "index", []pyrt.Value{pyrt.Int(1)}, nil); return err },
			"ValueError: tuple.index(x): x not in tuple",
		},
		"notCallable": {
			func() error { _, err := rt.Call(pyrt.Int(1), nil, nil); return err },
			"TypeError: 'int' object is not callable",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.f()
			if err == nil {
				t.Fatal("no error")
			}
			if got := err.Error(); got != c.want {
				t.Errorf("have %q, want %q", got, c.want)
			}
		})
	}
}
