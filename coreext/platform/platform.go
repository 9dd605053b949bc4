// Package platform provides the platform module, which describes the host
// operating system.
package platform

import (
	"runtime"
	"strings"

	"github.com/zephyrtronium/pyrt"
)

// Module is the definition of the platform module.
var Module = pyrt.ModuleDef{Name: "platform", Init: initPlatform}

func init() {
	pyrt.Register(Module)
}

// Info describes the host. Fields that cannot be determined are empty.
type Info struct {
	System  string
	Release string
	Version string
	Machine string
}

func initPlatform(rt *pyrt.Runtime) (pyrt.Value, error) {
	info := hostInfo()
	if info.System == "" {
		info.System = strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
	}
	if info.Machine == "" {
		info.Machine = runtime.GOARCH
	}
	str := func(name, s string) *pyrt.Function {
		return pyrt.NewFunction(name, func(rt *pyrt.Runtime, args []pyrt.Value, kwargs pyrt.Kwargs) (pyrt.Value, error) {
			if len(args) != 0 || len(kwargs) != 0 {
				return nil, pyrt.NewExceptionf(pyrt.ArityError, "%s() takes no arguments (%d given)", name, len(args)+len(kwargs))
			}
			return pyrt.Str(s), nil
		})
	}
	members := map[string]pyrt.Value{
		"machine": str("machine", info.Machine),
		"release": str("release", info.Release),
		"system":  str("system", info.System),
		"version": str("version", info.Version),
	}
	return pyrt.NewModule("platform", members)
}
