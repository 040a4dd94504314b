// file: internal/appinfo/appinfo.go

// Package appinfo resolves the running build's version for startup
// logs and the health endpoint.
package appinfo

import (
	"os"
	"runtime/debug"
)

// Version returns the application version: APP_VERSION when set,
// otherwise the module version or VCS revision from build info,
// falling back to "dev".
func Version() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "dev"
}
