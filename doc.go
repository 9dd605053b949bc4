/*
Package pyrt is the runtime support library for Go programs translated from a
dynamically typed scripting language in the Python family. Generated code
builds Values, resolves names through Frames, applies operators and sequence
operations directly to Values, and routes attribute access, method calls, and
builtin calls through a Runtime.

To start, create a Runtime with NewRuntime. A zero Config uses the process's
arguments and standard streams with UTF-8 text; LoadConfig reads the same
settings from YAML. Importing github.com/zephyrtronium/pyrt/coreext for side
effects makes the standard modules importable from every Runtime.

Values

The set of Value implementations is closed. Number holds either an int64 or a
float64, and arithmetic on two integers stays integral except for true
division. Str, Bool, None, and Tuple are immutable. *List, *Object, and
*TextIOWrapper are handles: copying one aliases the same storage, so a change
made through one alias is visible through every other. Clone gives the copy
semantics of the modeled language for any variant.

Lists and objects guard their storage with runtime-checked borrows. Mutating a
list while it is being iterated, for example by appending to it from the
callback passed to Iterate or List.Iter, fails with a RuntimeError rather than
corrupting the iteration:

	err := pyrt.Iterate(l, func(v pyrt.Value) error {
		return l.Append(v) // RuntimeError
	})

Errors

Every runtime failure is an *Exception carrying an ErrorKind. The kinds are
themselves errors, so callers test them with errors.Is:

	_, err := pyrt.Index(l, pyrt.Int(10))
	if errors.Is(err, pyrt.IndexError) {
		// ...
	}

Classes and modules

A Class is a Schema, mapping attribute names to slots, together with the
class's member values. Instances copy the members of their class and may
assign only slots the schema names. A module is a class marked by its
ModuleSlot; calling a module member passes no receiver, whereas calling a
member of an ordinary object passes the object first.

Modules are registered with Register, normally from the init function of the
package that defines them, and every Runtime created afterward initializes
them once:

	var Module = pyrt.ModuleDef{Name: "greet", Init: func(rt *pyrt.Runtime) (pyrt.Value, error) {
		return pyrt.NewModule("greet", map[string]pyrt.Value{
			"hello": pyrt.NewFunction("hello", hello),
		})
	}}

	func init() {
		pyrt.Register(Module)
	}

Generated code then reaches the module through Runtime.Import or
Runtime.ImportFrom.
*/
package pyrt
