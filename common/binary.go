package common

import (
	"fmt"
	"runtime"
)

const DefaultAppName = "geohashd"

// overwritten with -ldflags "-X" at build time
var (
	VerBinary = "unset"
	BuildTime = "unset"
	Commit    = "unset"
)

type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   VerBinary,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		Commit:    Commit,
	}
}

// VerString formats the build info for app, an empty app means DefaultAppName.
func VerString(app string) string {
	if app == "" {
		app = DefaultAppName
	}
	b := GetBuildInfo()
	return fmt.Sprintf("%s v%s (built w/%s), build at: %s-%s", app, b.Version, b.GoVersion, b.BuildTime, b.Commit)
}
