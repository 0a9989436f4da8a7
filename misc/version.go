// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

const appName = "hview"

// Set by linker: -X htmlview/misc.version=... -X htmlview/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash set at build time or, if absent, the one
// recorded by go toolchain in build info.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
