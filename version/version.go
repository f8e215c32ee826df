// Package version provides the bkyml version strings.
package version

import (
	_ "embed"
	"strings"
)

// buildVersion can be set at link time:
//
//	go build -ldflags "-X github.com/buildkite/bkyml/version.buildVersion=abc123" .

//go:embed VERSION
var baseVersion string
var buildVersion string

// Version returns the release version, with the build version appended when
// one was set at link time.
func Version() string {
	v := strings.TrimSpace(baseVersion)
	if buildVersion != "" {
		v += "+" + buildVersion
	}
	return v
}
