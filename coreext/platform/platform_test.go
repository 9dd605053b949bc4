package platform_test

import (
	"testing"

	"github.com/zephyrtronium/pyrt"
	_ "github.com/zephyrtronium/pyrt/coreext/platform" // side effects
	"github.com/zephyrtronium/pyrt/testutils"
)

func TestRegister(t *testing.T) {
	m := testutils.Module(t, testutils.Runtime(), "platform")
	testutils.CheckMembers(t, m, []string{"machine", "release", "system", "version"})
}

func TestFunctions(t *testing.T) {
	rt := testutils.Runtime()
	m := testutils.Module(t, rt, "platform")
	for _, name := range []string{"machine", "release", "system", "version"} {
		t.Run(name, func(t *testing.T) {
			v, err := rt.CallMember(m, name, nil, nil)
			if !testutils.PassKind(pyrt.KindStr)(v, err) {
				t.Fatalf("have %v, %v; want a str", v, err)
			}
			if (name == "system" || name == "machine") && v == pyrt.Value(pyrt.Str("")) {
				t.Errorf("%s is empty", name)
			}
			if _, err := rt.CallMember(m, name, []pyrt.Value{pyrt.None}, nil); !testutils.PassFailure(pyrt.ArityError)(nil, err) {
				t.Errorf("with argument: have error %v, want ArityError", err)
			}
		})
	}
}
