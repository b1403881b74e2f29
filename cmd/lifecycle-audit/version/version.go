package version

import (
	"runtime/debug"
)

// Version can be set with `-ldflags="-X .../version.Version=v0.1.0"`.
var Version = ""

func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
