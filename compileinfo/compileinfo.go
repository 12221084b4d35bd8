// Package compileinfo reports which revision of methylage produced a binary,
// so that results can be traced back to the code that computed them.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

type BuildInfo struct {
	Binary       string
	Module       string
	GoVersion    string
	Revision     string
	RevisionTime string
	Dirty        bool
}

func (b BuildInfo) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s", b.Binary)
	if b.Module != "" {
		fmt.Fprintf(&sb, " (%s)", b.Module)
	}
	if b.GoVersion != "" {
		fmt.Fprintf(&sb, " built with %s", b.GoVersion)
	}
	if b.Revision == "" {
		sb.WriteString(" from an unknown revision.")
		return sb.String()
	}

	fmt.Fprintf(&sb, " at revision %s", b.Revision)
	if b.RevisionTime != "" {
		fmt.Fprintf(&sb, " (%s)", b.RevisionTime)
	}
	sb.WriteString(".")
	if b.Dirty {
		sb.WriteString(" The working tree had uncommitted changes.")
	}

	return sb.String()
}

func Read() BuildInfo {
	out := BuildInfo{Binary: filepath.Base(os.Args[0])}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Module = z.Main.Path
	if z.Main.Version != "" && z.Main.Version != "(devel)" {
		out.Module += "@" + z.Main.Version
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.RevisionTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Read())
}
