// Package version provides build and version information for pathfinder. VCS metadata is read from the build info
// embedded by the Go toolchain unless it was set explicitly through ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// These variables can be set via ldflags at build time for explicit versioning.
var (
	// Version is the semantic version of the build.
	Version = "0.3.0"
	// GitCommit is the git commit hash.
	GitCommit = ""
	// GitCommitTime is the timestamp of the git commit.
	GitCommitTime = ""
	// GitTreeDirty indicates if the git tree was dirty at build time.
	GitTreeDirty = ""
)

// Info contains the full version information for the build.
type Info struct {
	Version       string `json:"version"`
	GitCommit     string `json:"gitCommit,omitempty"`
	GitCommitTime string `json:"gitCommitTime,omitempty"`
	GitTreeDirty  bool   `json:"gitTreeDirty"`
	GoVersion     string `json:"goVersion"`
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string, len(info.Settings))
	for _, kv := range info.Settings {
		settings[kv.Key] = kv.Value
	}
	setIfEmpty(&GitCommit, settings["vcs.revision"])
	setIfEmpty(&GitCommitTime, settings["vcs.time"])
	setIfEmpty(&GitTreeDirty, settings["vcs.modified"])
}

func setIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

// GetInfo returns the complete version information.
func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		GitCommitTime: GitCommitTime,
		GitTreeDirty:  GitTreeDirty == "true",
		GoVersion:     runtime.Version(),
	}
}

// commit returns the short commit hash, suffixed with "-dirty" for builds of a modified tree.
func (i Info) commit() string {
	c := i.GitCommit
	if len(c) > 7 {
		c = c[:7]
	}
	if c != "" && i.GitTreeDirty {
		c += "-dirty"
	}
	return c
}

// String returns a formatted multi-line version string.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pathfinder version %s\n", i.Version)
	if c := i.commit(); c != "" {
		fmt.Fprintf(&sb, "  Commit:     %s\n", c)
	}
	if i.GitCommitTime != "" {
		built := i.GitCommitTime
		if t, err := time.Parse(time.RFC3339, i.GitCommitTime); err == nil {
			built = t.Format("2006-01-02 15:04:05 MST")
		}
		fmt.Fprintf(&sb, "  Built:      %s\n", built)
	}
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)
	return sb.String()
}

// Short returns a single-line version string suitable for --version output.
func (i Info) Short() string {
	if c := i.commit(); c != "" {
		return i.Version + "+" + c
	}
	return i.Version
}
