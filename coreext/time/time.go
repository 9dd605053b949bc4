// Package time provides the time module.
package time

import (
	"math"
	"time"

	"github.com/zephyrtronium/pyrt"
	"gitlab.com/variadico/lctime"
)

// Module is the definition of the time module.
var Module = pyrt.ModuleDef{Name: "time", Init: initTime}

func init() {
	pyrt.Register(Module)
}

// now is the clock used by the module.
var now = time.Now

func initTime(rt *pyrt.Runtime) (pyrt.Value, error) {
	members := map[string]pyrt.Value{
		"strftime": pyrt.NewFunction("strftime", strftime),
		"time":     pyrt.NewFunction("time", unixTime),
		"time_ns":  pyrt.NewFunction("time_ns", unixTimeNS),
	}
	return pyrt.NewModule("time", members)
}

// unixTime is a time function.
//
// time returns the seconds since the Unix epoch as a float.
func unixTime(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	if len(args) != 0 || len(kwargs) != 0 {
		return nil, pyrt.NewExceptionf(pyrt.ArityError, "time() takes no arguments (%d given)", len(args)+len(kwargs))
	}
	return pyrt.Float(float64(now().UnixNano()) / 1e9), nil
}

// unixTimeNS is a time function.
//
// time_ns returns the nanoseconds since the Unix epoch as an integer.
func unixTimeNS(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	if len(args) != 0 || len(kwargs) != 0 {
		return nil, pyrt.NewExceptionf(pyrt.ArityError, "time_ns() takes no arguments (%d given)", len(args)+len(kwargs))
	}
	return pyrt.Int(now().UnixNano()), nil
}

// strftime is a time function.
//
// strftime formats a time in the local time zone. The time is given in
// seconds since the Unix epoch and defaults to now.
func strftime(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, pyrt.NewExceptionf(pyrt.ArityError, "strftime expected 1 or 2 arguments, got %d", len(args))
	}
	if len(kwargs) != 0 {
		return nil, pyrt.NewException(pyrt.TypeError, "strftime() takes no keyword arguments")
	}
	format, ok := args[0].(pyrt.Str)
	if !ok {
		return nil, pyrt.NewExceptionf(pyrt.TypeError, "strftime() argument 1 must be str, not %s", pyrt.TypeName(args[0]))
	}
	t := now()
	if len(args) == 2 && args[1] != pyrt.None {
		secs, ok := args[1].(pyrt.Number)
		if !ok {
			return nil, pyrt.NewExceptionf(pyrt.TypeError, "strftime() argument 2 must be a number, not %s", pyrt.TypeName(args[1]))
		}
		f := secs.Float64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, pyrt.NewException(pyrt.ValueError, "timestamp out of range for platform time_t")
		}
		sec, frac := math.Modf(f)
		t = time.Unix(int64(sec), int64(frac*1e9))
	}
	return pyrt.Str(lctime.Strftime(string(format), t)), nil
}
