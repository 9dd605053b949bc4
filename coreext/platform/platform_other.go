//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris && !windows

package platform

func hostInfo() Info {
	return Info{}
}
