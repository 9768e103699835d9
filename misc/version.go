// Package misc holds program identity reported by the CLI and logs.
package misc

import (
	"runtime/debug"
)

var (
	// set with -ldflags "-X stylekit/misc.version=... -X stylekit/misc.gitHash=..."
	version = ""
	gitHash = ""
)

const appName = "stylekit"

func GetAppName() string {
	return appName
}

// GetVersion returns the linked version, the module version from build info
// or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}

// GetGitHash returns the linked commit hash or the VCS revision recorded in
// build info.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
