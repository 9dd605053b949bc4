// Package testutils provides utilities for testing pyrt programs in Go.
package testutils

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/pyrt"
)

// testRT is the Runtime used for all tests.
var testRT *pyrt.Runtime

// testOut and testErr receive testRT's standard output and error.
var testOut, testErr bytes.Buffer

var testRTInit sync.Once

// Runtime returns a Runtime for testing. The Runtime is shared by all tests
// that use this package. Its standard input is empty, and its standard
// output and error are captured by Stdout and Stderr.
func Runtime() *pyrt.Runtime {
	testRTInit.Do(ResetRuntime)
	return testRT
}

// ResetRuntime reinitializes the Runtime returned by Runtime and clears its
// captured output. It is not safe to call this in parallel tests.
func ResetRuntime() {
	testOut.Reset()
	testErr.Reset()
	rt, err := pyrt.NewRuntime(pyrt.Config{
		Argv:   []string{"test"},
		Stdin:  strings.NewReader(""),
		Stdout: &testOut,
		Stderr: &testErr,
	})
	if err != nil {
		panic(err)
	}
	testRT = rt
}

// Stdout returns everything written to the shared Runtime's standard output
// since the last call to Stdout or ResetRuntime, then clears it.
func Stdout() string {
	r := testOut.String()
	testOut.Reset()
	return r
}

// Stderr is like Stdout for standard error.
func Stderr() string {
	r := testErr.String()
	testErr.Reset()
	return r
}

// Streams holds the captured output of a Runtime created by NewRuntime.
type Streams struct {
	Out bytes.Buffer
	Err bytes.Buffer
}

// NewRuntime creates an unshared Runtime reading stdin and writing to the
// returned Streams.
func NewRuntime(t testing.TB, stdin string, mods ...pyrt.ModuleDef) (*pyrt.Runtime, *Streams) {
	t.Helper()
	s := new(Streams)
	rt, err := pyrt.NewRuntime(pyrt.Config{
		Argv:   []string{t.Name()},
		Stdin:  strings.NewReader(stdin),
		Stdout: &s.Out,
		Stderr: &s.Err,
	}, mods...)
	if err != nil {
		t.Fatalf("couldn't create runtime: %v", err)
	}
	return rt, s
}

// A CallTestCase is a test case containing a call into the runtime and a
// predicate to check the result.
type CallTestCase struct {
	// Call is the operation to perform.
	Call func(rt *pyrt.Runtime) (pyrt.Value, error)
	// Pass is a predicate taking the result of Call. If Pass returns false,
	// then the test fails.
	Pass func(result pyrt.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses Runtime to
// perform the call.
func (c CallTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		r, err := c.Call(Runtime())
		if !c.Pass(r, err) {
			if err != nil {
				t.Errorf("%s produced wrong result; an error occurred: %v", name, err)
			} else {
				t.Errorf("%s produced wrong result; got %s (%s)", name, pyrt.Repr(r), pyrt.TypeName(r))
			}
		}
	}
}

// Builtin returns a Call function for a CallTestCase that calls the named
// builtin with the given arguments.
func Builtin(name string, args []pyrt.Value, kwargs pyrt.Kwargs) func(*pyrt.Runtime) (pyrt.Value, error) {
	return func(rt *pyrt.Runtime) (pyrt.Value, error) {
		f, ok := rt.Builtin(name)
		if !ok {
			return nil, pyrt.NewExceptionf(pyrt.NameError, "name '%s' is not defined", name)
		}
		return rt.Call(f, args, kwargs)
	}
}

// Member returns a Call function for a CallTestCase that calls the method attr
// of v. The value is built by v on each call so that mutations made by one
// run cannot affect another.
func Member(v func() pyrt.Value, attr string, args ...pyrt.Value) func(*pyrt.Runtime) (pyrt.Value, error) {
	return func(rt *pyrt.Runtime) (pyrt.Value, error) {
		return rt.CallMember(v(), attr, args, nil)
	}
}

// PassEqual returns a Pass function for a CallTestCase that predicates on
// equality. To determine equality, this first checks for equal identities; if
// not, it checks that the values are the same variant and pyrt.Equal reports
// them equal. If err is not nil, then the predicate returns false.
func PassEqual(want pyrt.Value) func(pyrt.Value, error) bool {
	return func(result pyrt.Value, err error) bool {
		if err != nil || result == nil {
			return false
		}
		if want == result {
			return true
		}
		if want.Kind() != result.Kind() {
			return false
		}
		if wn, ok := want.(pyrt.Number); ok {
			// 1 and 1.0 are equal, but they are not the same result.
			if wn.IsFloat() != result.(pyrt.Number).IsFloat() {
				return false
			}
		}
		eq, err := pyrt.Equal(want, result)
		return err == nil && eq
	}
}

// PassIdentical returns a Pass function for a CallTestCase that predicates
// on identity, i.e. the result must be exactly the given value. If err is not
// nil, then the predicate returns false.
func PassIdentical(want pyrt.Value) func(pyrt.Value, error) bool {
	return func(result pyrt.Value, err error) bool {
		return err == nil && want == result
	}
}

// PassKind returns a Pass function for a CallTestCase that predicates on the
// variant of the result. If err is not nil, then the predicate returns false.
func PassKind(want pyrt.Kind) func(pyrt.Value, error) bool {
	return func(result pyrt.Value, err error) bool {
		return err == nil && result != nil && result.Kind() == want
	}
}

// PassFailure returns a Pass function for a CallTestCase that returns true
// iff the call failed with an error of the given kind.
func PassFailure(kind pyrt.ErrorKind) func(pyrt.Value, error) bool {
	return func(result pyrt.Value, err error) bool {
		return errors.Is(err, kind)
	}
}

// PassSuccess returns a Pass function for a CallTestCase that returns true
// iff the call did not fail.
func PassSuccess() func(pyrt.Value, error) bool {
	return func(result pyrt.Value, err error) bool {
		return err == nil
	}
}

// CheckMembers is a testing helper to check whether a class or module has
// exactly the public members we expect.
func CheckMembers(t *testing.T, c *pyrt.Class, names []string) {
	t.Helper()
	checked := make(map[string]bool, len(names))
	for _, name := range names {
		checked[name] = true
		t.Run("Have_"+name, func(t *testing.T) {
			v, err := c.Get(name)
			if err != nil {
				t.Fatal("no member", name, err)
			}
			if v == nil {
				t.Fatal("member", name, "is nil")
			}
		})
	}
	for _, name := range c.Schema().Names() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		t.Run("Want_"+name, func(t *testing.T) {
			if !checked[name] {
				t.Fatal("unexpected member", name)
			}
		})
	}
}

// Module imports the named module from rt and fails the test if it is
// missing or not a module.
func Module(t testing.TB, rt *pyrt.Runtime, name string) *pyrt.Class {
	t.Helper()
	v, err := rt.Import(name)
	if err != nil {
		t.Fatalf("couldn't import %s: %v", name, err)
	}
	c, ok := v.(*pyrt.Class)
	if !ok || !c.IsModule() {
		t.Fatalf("%s is %s, not a module", name, pyrt.TypeName(v))
	}
	return c
}
