// Package main provides the entry point for the calidoge CLI tool.
package main

import (
	"github.com/DOGE-network/cali-doge-sub006/cmd/calidoge/cmd"
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
