// Package math provides the math module.
package math

import (
	"math"

	"github.com/zephyrtronium/pyrt"
)

// Module is the definition of the math module.
var Module = pyrt.ModuleDef{Name: "math", Init: initMath}

func init() {
	pyrt.Register(Module)
}

func initMath(rt *pyrt.Runtime) (pyrt.Value, error) {
	members := map[string]pyrt.Value{
		"ceil":  pyrt.NewFunction("ceil", ceil),
		"e":     pyrt.Float(math.E),
		"fabs":  pyrt.NewFunction("fabs", fabs),
		"floor": pyrt.NewFunction("floor", floor),
		"inf":   pyrt.Float(math.Inf(1)),
		"isnan": pyrt.NewFunction("isnan", isnan),
		"nan":   pyrt.Float(math.NaN()),
		"pi":    pyrt.Float(math.Pi),
		"sqrt":  pyrt.NewFunction("sqrt", sqrt),
	}
	return pyrt.NewModule("math", members)
}

// realArg returns the single real argument of fn.
func realArg(fn string, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Number, error) {
	if len(args) != 1 || len(kwargs) != 0 {
		return pyrt.Number{}, pyrt.NewExceptionf(pyrt.ArityError, "%s() takes exactly one argument (%d given)", fn, len(args)+len(kwargs))
	}
	switch x := args[0].(type) {
	case pyrt.Number:
		return x, nil
	case pyrt.Bool:
		if x {
			return pyrt.Int(1), nil
		}
		return pyrt.Int(0), nil
	}
	return pyrt.Number{}, pyrt.NewExceptionf(pyrt.TypeError, "must be real number, not %s", pyrt.TypeName(args[0]))
}

// sqrt is a math function.
//
// sqrt returns the square root of its argument as a float.
func sqrt(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	x, err := realArg("sqrt", args, kwargs)
	if err != nil {
		return nil, err
	}
	f := x.Float64()
	if f < 0 {
		return nil, pyrt.NewException(pyrt.ValueError, "math domain error")
	}
	return pyrt.Float(math.Sqrt(f)), nil
}

// floor is a math function.
//
// floor returns the greatest integer not greater than its argument.
func floor(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	return round("floor", math.Floor, args, kwargs)
}

// ceil is a math function.
//
// ceil returns the least integer not less than its argument.
func ceil(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	return round("ceil", math.Ceil, args, kwargs)
}

func round(fn string, f func(float64) float64, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	x, err := realArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	if !x.IsFloat() {
		return x, nil
	}
	v := x.Float64()
	switch {
	case math.IsInf(v, 0):
		return nil, pyrt.NewException(pyrt.ValueError, "cannot convert float infinity to integer")
	case math.IsNaN(v):
		return nil, pyrt.NewException(pyrt.ValueError, "cannot convert float NaN to integer")
	}
	return pyrt.Int(int64(f(v))), nil
}

// fabs is a math function.
//
// fabs returns the absolute value of its argument as a float.
func fabs(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	x, err := realArg("fabs", args, kwargs)
	if err != nil {
		return nil, err
	}
	return pyrt.Float(math.Abs(x.Float64())), nil
}

// isnan is a math function.
func isnan(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	x, err := realArg("isnan", args, kwargs)
	if err != nil {
		return nil, err
	}
	return pyrt.Bool(math.IsNaN(x.Float64())), nil
}
