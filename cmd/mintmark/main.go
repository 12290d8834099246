// Package main provides the entry point for the mintmark CLI tool.
package main

import (
	"github.com/mintmark/mintmark/cmd/mintmark/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
