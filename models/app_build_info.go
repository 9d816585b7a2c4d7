package models

import "strings"

// AppBuildInfo is the build metadata linked into the server binary with
// -ldflags "-X main.buildVersion=...".
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Values the linker left at
// "N/A" are treated as unset.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: unsetIfNA(buildVersion),
		buildDate:    unsetIfNA(buildDate),
		buildCommit:  unsetIfNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// String renders the metadata for the startup log line, e.g.
// "version=1.2.0 date=2026-03-01 commit=abc123". Unset values print as N/A.
func (a AppBuildInfo) String() string {
	var b strings.Builder
	b.WriteString("version=")
	b.WriteString(orNA(a.buildVersion))
	b.WriteString(" date=")
	b.WriteString(orNA(a.buildDate))
	b.WriteString(" commit=")
	b.WriteString(orNA(a.buildCommit))
	return b.String()
}

func unsetIfNA(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
