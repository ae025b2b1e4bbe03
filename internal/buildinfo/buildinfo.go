// Package buildinfo reads the version and the VCS information embedded in
// the binary.
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	vcsRevision = "vcs.revision"
	vcsTime     = "vcs.time"
	vcsModified = "vcs.modified"

	unknown = "unknown"
)

// version is set by the linker, for instance,
// -ldflags "-X github.com/kakao/otbridge/internal/buildinfo.version=v0.1.0".
var version = "devel"

type Info struct {
	Version   string
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
	OS        string
	Arch      string

	deps map[string]string
}

// ReadVersionInfo returns the build information of the running binary.
// Fields unavailable in the binary are reported as unknown.
func ReadVersionInfo() Info {
	info := Info{
		Version:   version,
		GoVersion: runtime.Version(),
		Revision:  unknown,
		Time:      unknown,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		deps:      map[string]string{},
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, kv := range buildInfo.Settings {
		switch kv.Key {
		case vcsRevision:
			info.Revision = kv.Value
		case vcsTime:
			info.Time = kv.Value
		case vcsModified:
			info.Modified, _ = strconv.ParseBool(kv.Value)
		}
	}
	for _, dep := range buildInfo.Deps {
		if dep.Replace != nil {
			dep = dep.Replace
		}
		info.deps[dep.Path] = dep.Version
	}
	return info
}

// Dependency returns the version of the module linked into the binary.
func (info Info) Dependency(path string) (string, bool) {
	v, ok := info.deps[path]
	return v, ok
}

func (info Info) String() string {
	revision := info.Revision
	if info.Modified {
		revision += " (modified)"
	}
	var sb strings.Builder
	sb.WriteString("Version:     " + info.Version + "\n")
	sb.WriteString("Go Version:  " + info.GoVersion + "\n")
	sb.WriteString("Git Commit:  " + revision + "\n")
	sb.WriteString("Built:       " + info.Time + "\n")
	sb.WriteString("OS/Arch:     " + info.OS + "/" + info.Arch)
	return sb.String()
}

// Fields returns the information as log fields.
func (info Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", info.Version),
		zap.String("goVersion", info.GoVersion),
		zap.String("revision", info.Revision),
		zap.Bool("modified", info.Modified),
	}
}
