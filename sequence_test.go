package pyrt_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/pyrt"
	"github.com/zephyrtronium/pyrt/testutils"
)

// goValues converts a List, Tuple, or Str into comparable Go values: int64 and
// float64 for numbers, string for Strs, and nested slices for containers.
func goValues(v pyrt.Value) interface{} {
	switch v := v.(type) {
	case pyrt.Number:
		if v.IsFloat() {
			return v.Float64()
		}
		return v.Int64()
	case pyrt.Str:
		return string(v)
	case pyrt.Bool:
		return bool(v)
	case pyrt.NoneType:
		return nil
	case *pyrt.List:
		r := []interface{}{}
		for _, e := range v.Items() {
			r = append(r, goValues(e))
		}
		return r
	case pyrt.Tuple:
		r := []interface{}{"tuple"}
		for _, e := range v.Items() {
			r = append(r, goValues(e))
		}
		return r
	}
	return pyrt.Repr(v)
}

// TestIndex tests sequence indexing.
func TestIndex(t *testing.T) {
	l := list(ints(10, 20, 30)...)
	tp := tuple(ints(10, 20, 30)...)
	s := pyrt.Str("héllo")
	cases := map[string]struct {
		seq, i pyrt.Value
		want   pyrt.Value
		err    error
	}{
		"list0":      {l, pyrt.Int(0), pyrt.Int(10), nil},
		"list2":      {l, pyrt.Int(2), pyrt.Int(30), nil},
		"list-1":     {l, pyrt.Int(-1), pyrt.Int(30), nil},
		"list-3":     {l, pyrt.Int(-3), pyrt.Int(10), nil},
		"list3":      {l, pyrt.Int(3), nil, pyrt.IndexError},
		"list-4":     {l, pyrt.Int(-4), nil, pyrt.IndexError},
		"listFloat":  {l, pyrt.Float(0), nil, pyrt.TypeError},
		"listStr":    {l, pyrt.Str("0"), nil, pyrt.TypeError},
		"tuple1":     {tp, pyrt.Int(1), pyrt.Int(20), nil},
		"tuple-4":    {tp, pyrt.Int(-4), nil, pyrt.IndexError},
		"strRune":    {s, pyrt.Int(1), pyrt.Str("é"), nil},
		"str-1":      {s, pyrt.Int(-1), pyrt.Str("o"), nil},
		"str5":       {s, pyrt.Int(5), nil, pyrt.IndexError},
		"number":     {pyrt.Int(5), pyrt.Int(0), nil, pyrt.TypeError},
		"emptyList0": {list(), pyrt.Int(0), nil, pyrt.IndexError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := pyrt.Index(c.seq, c.i)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Errorf("have error %v, want %v", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !testutils.PassEqual(c.want)(got, nil) {
				t.Errorf("have %s, want %s", pyrt.Repr(got), pyrt.Repr(c.want))
			}
		})
	}
}

// TestSlice tests slicing with explicit results.
func TestSlice(t *testing.T) {
	i := func(n int64) pyrt.Value { return pyrt.Int(n) }
	l := list(ints(0, 1, 2, 3, 4)...)
	cases := map[string]struct {
		seq                pyrt.Value
		lower, upper, step pyrt.Value
		want               interface{}
	}{
		"all":        {l, nil, nil, nil, []interface{}{int64(0), int64(1), int64(2), int64(3), int64(4)}},
		"reverse":    {l, nil, nil, i(-1), []interface{}{int64(4), int64(3), int64(2), int64(1), int64(0)}},
		"none":       {l, pyrt.None, pyrt.None, pyrt.None, []interface{}{int64(0), int64(1), int64(2), int64(3), int64(4)}},
		"1:3":        {l, i(1), i(3), nil, []interface{}{int64(1), int64(2)}},
		"-2:":        {l, i(-2), nil, nil, []interface{}{int64(3), int64(4)}},
		"::2":        {l, nil, nil, i(2), []interface{}{int64(0), int64(2), int64(4)}},
		"3:0:-1":     {l, i(3), i(0), i(-1), []interface{}{int64(3), int64(2), int64(1)}},
		"big":        {l, i(-100), i(100), nil, []interface{}{int64(0), int64(1), int64(2), int64(3), int64(4)}},
		"bigReverse": {l, i(100), i(-100), i(-2), []interface{}{int64(4), int64(2), int64(0)}},
		"empty":      {l, i(3), i(1), nil, []interface{}{}},
		"tuple":      {tuple(ints(1, 2, 3)...), i(1), nil, nil, []interface{}{"tuple", int64(2), int64(3)}},
		"str":        {pyrt.Str("héllo"), nil, nil, i(-1), "olléh"},
		"str1:3":     {pyrt.Str("héllo"), i(1), i(3), nil, "él"},
		"hugeStep":   {l, i(1), nil, i(math.MaxInt64), []interface{}{int64(1)}},
		"hugeNeg":    {l, nil, nil, i(math.MinInt64), []interface{}{int64(4)}},
		"hugeNeg1:":  {l, i(-1), i(1), i(math.MinInt64), []interface{}{int64(4)}},
		"hugeTuple":  {tuple(ints(1, 2, 3)...), i(2), nil, i(math.MaxInt64 - 1), []interface{}{"tuple", int64(3)}},
		"hugeStr":    {pyrt.Str("héllo"), i(1), nil, i(math.MaxInt64), "é"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := pyrt.Slice(c.seq, c.lower, c.upper, c.step)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, goValues(got)); diff != "" {
				t.Errorf("wrong slice (-want +have):\n%s", diff)
			}
		})
	}
}

// TestSliceErrors tests invalid slices.
func TestSliceErrors(t *testing.T) {
	l := list(ints(1, 2)...)
	cases := map[string]struct {
		seq, lower, upper, step pyrt.Value
		err                     error
	}{
		"zeroStep":   {l, nil, nil, pyrt.Int(0), pyrt.ValueError},
		"floatStep":  {l, nil, nil, pyrt.Float(1), pyrt.TypeError},
		"strLower":   {l, pyrt.Str("a"), nil, nil, pyrt.TypeError},
		"number":     {pyrt.Int(1), nil, nil, nil, pyrt.TypeError},
		"strZero":    {pyrt.Str("ab"), nil, nil, pyrt.Int(0), pyrt.ValueError},
		"tupleFloat": {tuple(), pyrt.Float(0), nil, nil, pyrt.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := pyrt.Slice(c.seq, c.lower, c.upper, c.step); !errors.Is(err, c.err) {
				t.Errorf("have error %v, want %v", err, c.err)
			}
		})
	}
}

// sliceLen is the length of range(start, stop, step) after adjusting the
// bounds of a sequence of length n.
func sliceLen(n int, lower, upper *int, step int) int {
	adjust := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += n
		}
		lo, hi := 0, n
		if step < 0 {
			lo, hi = -1, n-1
		}
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		return v
	}
	var start, stop int
	if step > 0 {
		start, stop = adjust(lower, 0), adjust(upper, n)
		if start >= stop {
			return 0
		}
		return (stop-start-1)/step + 1
	}
	start, stop = adjust(lower, n-1), adjust(upper, -1)
	if stop >= start {
		return 0
	}
	return (start-stop-1)/(-step) + 1
}

// TestSliceLength tests that slice lengths follow the clamped stepped range
// rules over a grid of bounds.
func TestSliceLength(t *testing.T) {
	const n = 6
	l := list(ints(0, 1, 2, 3, 4, 5)...)
	var bounds []*int
	bounds = append(bounds, nil)
	for b := -9; b <= 9; b++ {
		b := b
		bounds = append(bounds, &b)
	}
	val := func(p *int) pyrt.Value {
		if p == nil {
			return nil
		}
		return pyrt.Int(int64(*p))
	}
	for _, step := range []int{-4, -2, -1, 1, 2, 3, 7} {
		for _, lower := range bounds {
			for _, upper := range bounds {
				got, err := pyrt.Slice(l, val(lower), val(upper), pyrt.Int(int64(step)))
				if err != nil {
					t.Fatal(err)
				}
				want := sliceLen(n, lower, upper, step)
				if have := got.(*pyrt.List).Len(); have != want {
					t.Errorf("[%v:%v:%d]: have len %d, want %d", pyrt.Repr(val(lower)), pyrt.Repr(val(upper)), step, have, want)
				}
			}
		}
	}
}

// TestSliceIndependent tests that a slice owns its storage.
func TestSliceIndependent(t *testing.T) {
	l := list(ints(1, 2, 3)...)
	s, err := pyrt.Slice(l, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.(*pyrt.List).Append(pyrt.Int(4)); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Errorf("slice aliases its source: have len %d, want 3", l.Len())
	}
}

// TestMin tests sequence minimums.
func TestMin(t *testing.T) {
	cases := map[string]struct {
		seq  pyrt.Value
		want pyrt.Value
		err  error
	}{
		"list":    {list(ints(3, 1, 2)...), pyrt.Int(1), nil},
		"mixed":   {list(pyrt.Int(3), pyrt.Float(0.5), pyrt.Int(1)), pyrt.Float(0.5), nil},
		"tuple":   {tuple(pyrt.Str("b"), pyrt.Str("a")), pyrt.Str("a"), nil},
		"str":     {pyrt.Str("hello"), pyrt.Str("e"), nil},
		"empty":   {list(), nil, pyrt.ValueError},
		"emptyT":  {tuple(), nil, pyrt.ValueError},
		"emptyS":  {pyrt.Str(""), nil, pyrt.ValueError},
		"unorder": {list(pyrt.Int(1), pyrt.Str("a")), nil, pyrt.TypeError},
		"number":  {pyrt.Int(1), nil, pyrt.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := pyrt.Min(c.seq)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Errorf("have error %v, want %v", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !testutils.PassEqual(c.want)(got, nil) {
				t.Errorf("have %s, want %s", pyrt.Repr(got), pyrt.Repr(c.want))
			}
		})
	}
}

// TestContains tests membership.
func TestContains(t *testing.T) {
	cases := map[string]struct {
		seq, v pyrt.Value
		want   bool
		err    error
	}{
		"list":      {list(ints(1, 2)...), pyrt.Int(2), true, nil},
		"listFloat": {list(ints(1, 2)...), pyrt.Float(2), true, nil},
		"listNot":   {list(ints(1, 2)...), pyrt.Int(3), false, nil},
		"variants":  {list(pyrt.Int(1), pyrt.Str("a")), pyrt.Str("a"), true, nil},
		"variantNo": {list(pyrt.Int(1), pyrt.Str("a")), pyrt.True, false, nil},
		"none":      {list(pyrt.Int(1), pyrt.None), pyrt.None, true, nil},
		"tuple":     {tuple(pyrt.Str("x")), pyrt.Str("x"), true, nil},
		"substr":    {pyrt.Str("hello"), pyrt.Str("ell"), true, nil},
		"substrNot": {pyrt.Str("hello"), pyrt.Str("le"), false, nil},
		"strInt":    {pyrt.Str("1"), pyrt.Int(1), false, pyrt.TypeError},
		"number":    {pyrt.Int(1), pyrt.Int(1), false, pyrt.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := pyrt.Contains(c.seq, c.v)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Errorf("have error %v, want %v", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("have %t, want %t", got, c.want)
			}
		})
	}
}

// TestLen tests sequence lengths.
func TestLen(t *testing.T) {
	cases := map[string]struct {
		v    pyrt.Value
		want int
		err  error
	}{
		"list":  {list(ints(1, 2, 3)...), 3, nil},
		"tuple": {tuple(), 0, nil},
		"str":   {pyrt.Str("héllo"), 5, nil},
		"int":   {pyrt.Int(1), 0, pyrt.TypeError},
		"none":  {pyrt.None, 0, pyrt.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := pyrt.Len(c.v)
			if !errors.Is(err, c.err) || (c.err == nil && err != nil) {
				t.Fatalf("have error %v, want %v", err, c.err)
			}
			if got != c.want {
				t.Errorf("have %d, want %d", got, c.want)
			}
		})
	}
}

// TestBorrowViolation tests that mutating a list while it is being iterated
// fails loudly.
func TestBorrowViolation(t *testing.T) {
	l := list(ints(1, 2)...)
	err := pyrt.Iterate(l, func(v pyrt.Value) error {
		return l.Append(v)
	})
	if !errors.Is(err, pyrt.RuntimeError) {
		t.Errorf("append during iteration: have error %v, want RuntimeError", err)
	}
	if l.Len() != 2 {
		t.Errorf("list changed: have len %d, want 2", l.Len())
	}
	// The borrow is released afterward.
	if err := l.Append(pyrt.Int(3)); err != nil {
		t.Errorf("append after iteration: %v", err)
	}

	rt := testutils.Runtime()
	err = l.Iter(func(i int, v pyrt.Value) error {
		_, err := rt.CallMember(l, "pop", nil, nil)
		return err
	})
	if !errors.Is(err, pyrt.RuntimeError) {
		t.Errorf("pop during iteration: have error %v, want RuntimeError", err)
	}
	// Reading during iteration is allowed.
	err = l.Iter(func(i int, v pyrt.Value) error {
		_, err := pyrt.Contains(l, v)
		return err
	})
	if err != nil {
		t.Errorf("contains during iteration: %v", err)
	}
}

// TestListMethods tests List methods through the dispatcher.
func TestListMethods(t *testing.T) {
	l123 := func() pyrt.Value { return list(ints(1, 2, 3)...) }
	i := pyrt.Int
	cases := map[string]map[string]testutils.CallTestCase{
		"append": {
			"one":  {Call: testutils.Member(l123, "append", i(4)), Pass: testutils.PassIdentical(pyrt.None)},
			"none": {Call: testutils.Member(l123, "append"), Pass: testutils.PassFailure(pyrt.ArityError)},
			"two":  {Call: testutils.Member(l123, "append", i(4), i(5)), Pass: testutils.PassFailure(pyrt.ArityError)},
		},
		"pop": {
			"last":  {Call: testutils.Member(l123, "pop"), Pass: testutils.PassEqual(i(3))},
			"first": {Call: testutils.Member(l123, "pop", i(0)), Pass: testutils.PassEqual(i(1))},
			"range": {Call: testutils.Member(l123, "pop", i(5)), Pass: testutils.PassFailure(pyrt.IndexError)},
			"empty": {Call: testutils.Member(func() pyrt.Value { return list() }, "pop"), Pass: testutils.PassFailure(pyrt.IndexError)},
		},
		"index": {
			"found":   {Call: testutils.Member(l123, "index", i(2)), Pass: testutils.PassEqual(i(1))},
			"missing": {Call: testutils.Member(l123, "index", i(9)), Pass: testutils.PassFailure(pyrt.ValueError)},
		},
		"count": {
			"one":  {Call: testutils.Member(l123, "count", i(2)), Pass: testutils.PassEqual(i(1))},
			"none": {Call: testutils.Member(l123, "count", pyrt.Str("2")), Pass: testutils.PassEqual(i(0))},
		},
		"len": {
			"three": {Call: testutils.Member(l123, "__len__"), Pass: testutils.PassEqual(i(3))},
		},
		"getitem": {
			"neg": {Call: testutils.Member(l123, "__getitem__", i(-1)), Pass: testutils.PassEqual(i(3))},
		},
		"contains": {
			"yes": {Call: testutils.Member(l123, "__contains__", i(1)), Pass: testutils.PassIdentical(pyrt.True)},
		},
		"unknown": {
			"sort": {Call: testutils.Member(l123, "sort"), Pass: testutils.PassFailure(pyrt.AttributeError)},
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

// TestListMutators tests the effects of mutating List methods.
func TestListMutators(t *testing.T) {
	rt := testutils.Runtime()
	cases := map[string]struct {
		attr string
		args []pyrt.Value
		want interface{}
	}{
		"append":   {"append", ints(4), []interface{}{int64(1), int64(2), int64(3), int64(4)}},
		"extend":   {"extend", []pyrt.Value{tuple(ints(4, 5)...)}, []interface{}{int64(1), int64(2), int64(3), int64(4), int64(5)}},
		"extendS":  {"extend", []pyrt.Value{pyrt.Str("ab")}, []interface{}{int64(1), int64(2), int64(3), "a", "b"}},
		"insert":   {"insert", ints(1, 9), []interface{}{int64(1), int64(9), int64(2), int64(3)}},
		"insertHi": {"insert", ints(99, 9), []interface{}{int64(1), int64(2), int64(3), int64(9)}},
		"insertLo": {"insert", ints(-99, 9), []interface{}{int64(9), int64(1), int64(2), int64(3)}},
		"pop":      {"pop", ints(1), []interface{}{int64(1), int64(3)}},
		"reverse":  {"reverse", nil, []interface{}{int64(3), int64(2), int64(1)}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			l := list(ints(1, 2, 3)...)
			if _, err := rt.CallMember(l, c.attr, c.args, nil); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, goValues(l)); diff != "" {
				t.Errorf("wrong result (-want +have):\n%s", diff)
			}
		})
	}
}

// TestListExtendSelf tests that extending a list with itself doubles it.
func TestListExtendSelf(t *testing.T) {
	l := list(ints(1, 2)...)
	if _, err := testutils.Runtime().CallMember(l, "extend", []pyrt.Value{l}, nil); err != nil {
		t.Fatal(err)
	}
	want := []interface{}{int64(1), int64(2), int64(1), int64(2)}
	if diff := cmp.Diff(want, goValues(l)); diff != "" {
		t.Errorf("wrong result (-want +have):\n%s", diff)
	}
}

// TestListCopy tests that copy does not alias.
func TestListCopy(t *testing.T) {
	rt := testutils.Runtime()
	l := list(ints(1)...)
	c, err := rt.CallMember(l, "copy", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.CallMember(c, "append", ints(2), nil); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 1 {
		t.Errorf("copy aliases: have len %d, want 1", l.Len())
	}
}

// TestSetIndex tests item assignment.
func TestSetIndex(t *testing.T) {
	l := list(ints(1, 2)...)
	if err := pyrt.SetIndex(l, pyrt.Int(-1), pyrt.Str("x")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]interface{}{int64(1), "x"}, goValues(l)); diff != "" {
		t.Errorf("wrong result (-want +have):\n%s", diff)
	}
	if err := pyrt.SetIndex(l, pyrt.Int(2), pyrt.None); !errors.Is(err, pyrt.IndexError) {
		t.Errorf("out of range: have error %v, want IndexError", err)
	}
	if err := pyrt.SetIndex(tuple(pyrt.None), pyrt.Int(0), pyrt.None); !errors.Is(err, pyrt.TypeError) {
		t.Errorf("tuple: have error %v, want TypeError", err)
	}
}

// TestTupleMethods tests Tuple methods.
func TestTupleMethods(t *testing.T) {
	tp := func() pyrt.Value { return tuple(pyrt.Int(1), pyrt.Str("a"), pyrt.Int(1)) }
	cases := map[string]testutils.CallTestCase{
		"count":   {Call: testutils.Member(tp, "count", pyrt.Int(1)), Pass: testutils.PassEqual(pyrt.Int(2))},
		"index":   {Call: testutils.Member(tp, "index", pyrt.Str("a")), Pass: testutils.PassEqual(pyrt.Int(1))},
		"missing": {Call: testutils.Member(tp, "index", pyrt.Str("b")), Pass: testutils.PassFailure(pyrt.ValueError)},
		"arity":   {Call: testutils.Member(tp, "count"), Pass: testutils.PassFailure(pyrt.ArityError)},
		"append":  {Call: testutils.Member(tp, "append", pyrt.None), Pass: testutils.PassFailure(pyrt.AttributeError)},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestStrMethods tests Str methods.
func TestStrMethods(t *testing.T) {
	rt := testutils.Runtime()
	cases := map[string]struct {
		s      string
		attr   string
		args   []pyrt.Value
		kwargs pyrt.Kwargs
		want   interface{}
		err    error
	}{
		"split":      {" a  b c ", "split", nil, nil, []interface{}{"a", "b", "c"}, nil},
		"splitEmpty": {"   ", "split", nil, nil, []interface{}{}, nil},
		"splitSep":   {"a,b,,c", "split", []pyrt.Value{pyrt.Str(",")}, nil, []interface{}{"a", "b", "", "c"}, nil},
		"splitMax":   {"a b c", "split", []pyrt.Value{pyrt.None, pyrt.Int(1)}, nil, []interface{}{"a", "b c"}, nil},
		"splitKw":    {"a-b-c", "split", nil, pyrt.Kwargs{"sep": pyrt.Str("-"), "maxsplit": pyrt.Int(1)}, []interface{}{"a", "b-c"}, nil},
		"splitBadKw": {"a", "split", nil, pyrt.Kwargs{"by": pyrt.Str("-")}, nil, pyrt.TypeError},
		"splitNoSep": {"a", "split", []pyrt.Value{pyrt.Str("")}, nil, nil, pyrt.ValueError},
		"strip":      {"  x  ", "strip", nil, nil, "x", nil},
		"stripChars": {"xxaxx", "strip", []pyrt.Value{pyrt.Str("x")}, nil, "a", nil},
		"lower":      {"AbC", "lower", nil, nil, "abc", nil},
		"upper":      {"AbC", "upper", nil, nil, "ABC", nil},
		"join":       {", ", "join", []pyrt.Value{list(pyrt.Str("a"), pyrt.Str("b"))}, nil, "a, b", nil},
		"joinInt":    {", ", "join", []pyrt.Value{list(pyrt.Int(1))}, nil, nil, pyrt.TypeError},
		"startswith": {"hello", "startswith", []pyrt.Value{pyrt.Str("he")}, nil, true, nil},
		"endswith":   {"hello", "endswith", []pyrt.Value{pyrt.Str("he")}, nil, false, nil},
		"unknown":    {"x", "title", nil, nil, nil, pyrt.AttributeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := rt.CallMember(pyrt.Str(c.s), c.attr, c.args, c.kwargs)
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Errorf("have error %v, want %v", err, c.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, goValues(got)); diff != "" {
				t.Errorf("wrong result (-want +have):\n%s", diff)
			}
		})
	}
}
