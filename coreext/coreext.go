// Package coreext registers the standard modules. Import it for side effects
// to make math, os.path, platform, sys, and time importable from every
// Runtime.
package coreext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/pyrt/coreext/math"
	_ "github.com/zephyrtronium/pyrt/coreext/ospath"
	_ "github.com/zephyrtronium/pyrt/coreext/platform"
	_ "github.com/zephyrtronium/pyrt/coreext/sys"
	_ "github.com/zephyrtronium/pyrt/coreext/time"
)
