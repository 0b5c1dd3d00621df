// Package buildinfo exposes version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/gomate/internal/buildinfo.buildVersion=v1.0.0"
//
// Binaries built with go install carry no ldflags; their module version and
// VCS stamp are read from the embedded build info instead.
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

const unknown = "N/A"

var (
	buildVersion = unknown
	buildDate    = unknown
	buildCommit  = unknown
)

var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version string
	Date    string
	Commit  string
}

// Get returns the link-time values, filling the unset ones from the
// embedded build info when available.
func Get() Info {
	info := Info{Version: buildVersion, Date: buildDate, Commit: buildCommit}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == unknown && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		}
	}
	return info
}

// Version returns the build version string.
func Version() string {
	return Get().Version
}

// PrintBuildData writes version, date and commit to w.
func PrintBuildData(w io.Writer) {
	info := Get()
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}
