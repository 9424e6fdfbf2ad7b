package internal

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/Eyevinn/timecode-tools/internal.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func GetVersion() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, GitCommit, BuildTime, runtime.Version())
}
