package device

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/julianstephens/zenith/internal/logger"
)

// Descriptor returns a short description of the machine the process runs on,
// e.g. "Desktop - linux/ubuntu 24.04". It falls back to the Go runtime
// platform when host information is unavailable.
func Descriptor() string {
	info, err := host.Info()
	if err != nil {
		logger.Debug("Host info unavailable", "error", err)
		return format(runtime.GOOS, runtime.GOARCH, "")
	}
	return format(info.OS, info.Platform, info.PlatformVersion)
}

func format(os, platform, version string) string {
	var b strings.Builder
	b.WriteString("Desktop - ")
	b.WriteString(os)
	if platform != "" && platform != os {
		fmt.Fprintf(&b, "/%s", platform)
	}
	if version != "" {
		fmt.Fprintf(&b, " %s", version)
	}
	return b.String()
}
