//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

func hostInfo() Info {
	info := Info{System: "Windows"}
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err == nil {
		defer k.Close()
		info.Release, _, _ = k.GetStringValue("CurrentVersion")
		info.Version, _, _ = k.GetStringValue("CurrentBuild")
	}
	if info.Release == "" {
		// Not Windows NT, or the registry failed. GetVersion is still better
		// than giving up.
		v, err := windows.GetVersion()
		if err == nil {
			info.Release = fmt.Sprintf("%d.%d", v&0xff, v>>8&0xff)
		}
	}
	return info
}
