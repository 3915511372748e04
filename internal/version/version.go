package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is set by ldflags during release builds
	Version = "dev"

	// GitCommit is set by ldflags during release builds
	GitCommit = ""
)

const ServiceName = "alloybridge"

type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func Get() Info {
	return Info{
		Service:   ServiceName,
		Version:   GetVersion(),
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersion prefers the ldflags version and falls back to module build info.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	return "dev"
}

func GetShortVersion() string {
	v := GetVersion()
	if len(GitCommit) >= 7 {
		return fmt.Sprintf("%s-%s", v, GitCommit[:7])
	}
	return v
}
