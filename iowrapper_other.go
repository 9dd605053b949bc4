//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package pyrt

func isTerminal(fd uintptr) bool {
	return false
}
