// Package app wires the seqcalc command: configuration, mode dispatch and
// version reporting.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"
)

// Build-time variables set via -ldflags, for example:
//
//	go build -ldflags="-X github.com/agbru/seqcalc/internal/app.Version=v1.2.3 -X github.com/agbru/seqcalc/internal/app.Commit=abc123"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionFlags are accepted in any position, so "seqcalc -server --version"
// prints the version instead of starting the server.
var versionFlags = []string{"--version", "-version", "-V"}

// HasVersionFlag reports whether args contain a version flag.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return slices.Contains(versionFlags, arg)
	})
}

// HasJSONFlag reports whether args ask for JSON output.
func HasJSONFlag(args []string) bool {
	return slices.Contains(args, "-json") || slices.Contains(args, "--json")
}

// VersionData is the version report, also used for JSON output.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the version information. Fields not set through
// -ldflags fall back to the VCS stamps of the Go build info.
func GetVersionInfo() VersionData {
	v := VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if v.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch {
		case setting.Key == "vcs.revision" && v.Commit == "unknown":
			v.Commit = setting.Value
		case setting.Key == "vcs.time" && v.BuildDate == "unknown":
			v.BuildDate = setting.Value
		}
	}
	return v
}

// PrintVersion writes the version report in human readable form.
func PrintVersion(out io.Writer) {
	v := GetVersionInfo()
	fmt.Fprintf(out, "seqcalc %s\n", v.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", v.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", v.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", v.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", v.OS, v.Arch)
}

// PrintVersionJSON writes the version report as a JSON object.
func PrintVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(GetVersionInfo())
}
