package math_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/pyrt"
	_ "github.com/zephyrtronium/pyrt/coreext/math" // side effects
	"github.com/zephyrtronium/pyrt/testutils"
)

func TestRegister(t *testing.T) {
	m := testutils.Module(t, testutils.Runtime(), "math")
	testutils.CheckMembers(t, m, []string{"ceil", "e", "fabs", "floor", "inf", "isnan", "nan", "pi", "sqrt"})
}

func call(name string, args ...pyrt.Value) func(*pyrt.Runtime) (pyrt.Value, error) {
	return func(rt *pyrt.Runtime) (pyrt.Value, error) {
		m, err := rt.Import("math")
		if err != nil {
			return nil, err
		}
		return rt.CallMember(m, name, args, nil)
	}
}

func TestFunctions(t *testing.T) {
	i, f := pyrt.Int, pyrt.Float
	cases := map[string]map[string]testutils.CallTestCase{
		"sqrt": {
			"int":      {Call: call("sqrt", i(16)), Pass: testutils.PassEqual(f(4))},
			"float":    {Call: call("sqrt", f(2.25)), Pass: testutils.PassEqual(f(1.5))},
			"bool":     {Call: call("sqrt", pyrt.True), Pass: testutils.PassEqual(f(1))},
			"negative": {Call: call("sqrt", i(-1)), Pass: testutils.PassFailure(pyrt.ValueError)},
			"str":      {Call: call("sqrt", pyrt.Str("4")), Pass: testutils.PassFailure(pyrt.TypeError)},
			"none":     {Call: call("sqrt"), Pass: testutils.PassFailure(pyrt.ArityError)},
		},
		"floor": {
			"int":      {Call: call("floor", i(3)), Pass: testutils.PassEqual(i(3))},
			"positive": {Call: call("floor", f(2.5)), Pass: testutils.PassEqual(i(2))},
			"negative": {Call: call("floor", f(-2.5)), Pass: testutils.PassEqual(i(-3))},
			"inf":      {Call: call("floor", f(math.Inf(-1))), Pass: testutils.PassFailure(pyrt.ValueError)},
			"nan":      {Call: call("floor", f(math.NaN())), Pass: testutils.PassFailure(pyrt.ValueError)},
		},
		"ceil": {
			"positive": {Call: call("ceil", f(2.5)), Pass: testutils.PassEqual(i(3))},
			"negative": {Call: call("ceil", f(-2.5)), Pass: testutils.PassEqual(i(-2))},
			"inf":      {Call: call("ceil", f(math.Inf(1))), Pass: testutils.PassFailure(pyrt.ValueError)},
		},
		"fabs": {
			"int":   {Call: call("fabs", i(-3)), Pass: testutils.PassEqual(f(3))},
			"float": {Call: call("fabs", f(-0.5)), Pass: testutils.PassEqual(f(0.5))},
		},
		"isnan": {
			"nan":  {Call: call("isnan", f(math.NaN())), Pass: testutils.PassIdentical(pyrt.True)},
			"num":  {Call: call("isnan", i(1)), Pass: testutils.PassIdentical(pyrt.False)},
			"list": {Call: call("isnan", pyrt.NewList()), Pass: testutils.PassFailure(pyrt.TypeError)},
		},
		"constants": {
			"missing": {Call: call("tau"), Pass: testutils.PassFailure(pyrt.AttributeError)},
			"pi":      {Call: call("pi"), Pass: testutils.PassFailure(pyrt.TypeError)},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for name, s := range c {
				t.Run(name, s.TestFunc(name))
			}
		})
	}
}

func TestConstants(t *testing.T) {
	rt := testutils.Runtime()
	m := testutils.Module(t, rt, "math")
	cases := map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"inf": math.Inf(1),
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := rt.GetAttr(m, name)
			if !testutils.PassEqual(pyrt.Float(want))(v, err) {
				t.Errorf("have %v, %v; want %v", v, err, want)
			}
		})
	}
	v, err := rt.GetAttr(m, "nan")
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := v.(pyrt.Number); !ok || !math.IsNaN(n.Float64()) {
		t.Errorf("nan: have %s", pyrt.Repr(v))
	}
}
