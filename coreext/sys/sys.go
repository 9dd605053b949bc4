// Package sys provides the sys module.
package sys

import (
	"math"
	"runtime"

	"github.com/zephyrtronium/pyrt"
)

// Module is the definition of the sys module.
var Module = pyrt.ModuleDef{Name: "sys", Init: initSys}

func init() {
	pyrt.Register(Module)
}

func initSys(rt *pyrt.Runtime) (pyrt.Value, error) {
	cfg := rt.Config()
	argv := make([]pyrt.Value, len(cfg.Argv))
	for i, a := range cfg.Argv {
		argv[i] = pyrt.Str(a)
	}
	members := map[string]pyrt.Value{
		"argv":     pyrt.NewList(argv...),
		"maxsize":  pyrt.Int(math.MaxInt64),
		"platform": pyrt.Str(Platform(runtime.GOOS)),
		"stderr":   rt.Stderr(),
		"stdin":    rt.Stdin(),
		"stdout":   rt.Stdout(),
	}
	return pyrt.NewModule("sys", members)
}

// Platform returns the value of sys.platform for a GOOS.
func Platform(goos string) string {
	switch goos {
	case "windows":
		return "win32"
	case "js":
		return "emscripten"
	case "wasip1":
		return "wasi"
	}
	return goos
}
