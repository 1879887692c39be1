// Package main is the entry point for the linup CLI.
//
// linup provisions a Linode instance, waits for it to boot and accept SSH
// connections, generates run-scoped credentials, transfers the setup
// scripts and a secrets-bearing configuration, and launches the remote
// setup in the background.
//
// Commands: deploy, regions, types, images, status, reboot, keys.
//
// For detailed usage information, run:
//
//	linup --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/linup/cmd/linup/commands"
	"github.com/imamik/linup/internal/ui"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprint(os.Stderr, ui.RenderError(err, ui.Styled()))
		os.Exit(1)
	}
}
