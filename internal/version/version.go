package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// develVersion marks builds without a release tag.
const develVersion = "(devel)"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = ""
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"

	resolveOnce sync.Once
)

// Info is the build metadata printed by the version command.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// resolve fills values not injected via ldflags from the module build info,
// which `go install` records.
func resolve() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		if Version == "" {
			Version = develVersion
		}

		return
	}

	if Version == "" {
		Version = info.Main.Version
	}

	if Version == "" {
		Version = develVersion
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" && len(setting.Value) >= 7 {
				Commit = setting.Value[:7]
			}
		case "vcs.time":
			if BuildTime == "unknown" {
				BuildTime = setting.Value
			}
		}
	}
}

// Current returns the resolved build metadata.
func Current() Info {
	resolveOnce.Do(resolve)

	goVersion := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}

	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: goVersion,
	}
}

// Short returns only the semantic version string.
func Short() string {
	return Current().Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	info := Current()

	return fmt.Sprintf("version: %s, commit: %s, built at: %s, go: %s",
		info.Version, info.Commit, info.BuildTime, info.GoVersion)
}
