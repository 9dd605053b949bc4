//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package platform

import (
	"bytes"

	"golang.org/x/sys/unix"
)

func hostInfo() Info {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		// If uname failed, we don't have anything else to try.
		return Info{}
	}
	field := func(b []byte) string {
		return string(bytes.TrimRight(b, "\x00"))
	}
	return Info{
		System:  field(uname.Sysname[:]),
		Release: field(uname.Release[:]),
		Version: field(uname.Version[:]),
		Machine: field(uname.Machine[:]),
	}
}
