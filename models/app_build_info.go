package models

import "fmt"

// NotAvailable stands in for build values the linker did not set.
const NotAvailable = "N/A"

// AppBuildInfo is what the three binaries know about their own build:
// version, date and commit, set with -ldflags "-X main.buildVersion=...".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }

func (a AppBuildInfo) BuildDate() string { return a.date }

func (a AppBuildInfo) BuildCommit() string { return a.commit }

// String is the one-line form printed by `onlyfan version`.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version %s, date %s, commit %s", orNA(a.version), orNA(a.date), orNA(a.commit))
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
