package common

import (
	"fmt"
	"runtime/debug"
)

// Version and GitCommit can be set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func GetModuleBuildInfo() (string, string, bool) {
	// If version was set via ldflags, use it
	if Version != "dev" {
		return Version, GitCommit, true
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}

	var gitCommit string
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			gitCommit = setting.Value
			break
		}
	}

	return info.Main.Version, gitCommit, true
}

// ShortCommit trims a revision to eight characters. Unknown revisions are
// returned empty.
func ShortCommit(commit string) string {
	if commit == "unknown" {
		return ""
	}
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// GetVersion formats the build for --version output.
func GetVersion() string {
	version, gitCommit, ok := GetModuleBuildInfo()
	if !ok {
		return "unknown"
	}
	if short := ShortCommit(gitCommit); len(short) > 0 {
		return fmt.Sprintf("%s (git: %s)", version, short)
	}
	return version
}
