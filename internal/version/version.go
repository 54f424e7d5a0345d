package version

import "runtime/debug"

// version is overridden at build time with
// -ldflags "-X github.com/indaco/podsrc/internal/version.version=1.2.3".
var version = ""

// GetVersion returns the build version, falling back to the module version
// recorded in the binary and finally to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
