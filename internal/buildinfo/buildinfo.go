// Package buildinfo exposes version metadata stamped at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/weatherface/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/weatherface/internal/buildinfo.buildDate=2025-01-01 \
//	  -X github.com/dmitrijs2005/weatherface/internal/buildinfo.buildCommit=abc123" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// Version returns the stamped version or "N/A".
func Version() string { return valueOrNA(buildVersion) }

// PrintBuildData writes version, date and commit to w, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(buildCommit))
}
