package main

import (
	"fmt"
	"os"

	"github.com/hegde-atri/wg-burrow/internal/config"
	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/selection"
	"github.com/hegde-atri/wg-burrow/internal/tui"
)

const version = "0.2.0"

func printHelp() {
	fmt.Printf(`burrow v%s - pick and toggle NetworkManager WireGuard tunnels

Usage:
  burrow
  burrow -h | --help
  burrow --version

The picker shares its selection with the wg-burrow status bar helper, so a
tunnel selected here is the one wg-burrow toggles.

Keys:
  Enter     bring the tunnel under the cursor up or down and select it
  s         select the tunnel under the cursor
  n / p     select the next / previous tunnel
  r         refresh
  q         quit

Settings are read from $%s, or %s in your config directory:

    state_file: /tmp/wg-current
    connection_type: wireguard
    nmcli: nmcli
    debug: false

`, version, config.EnvPath, config.FileName)
}

// main is the entry point for the interactive tunnel picker
func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		case "--version":
			fmt.Printf("burrow v%s\n", version)
			os.Exit(0)
		}
	}

	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings, using defaults: %v\n", err)
	}

	src := nm.NewCLI(cfg.Nmcli, cfg.ConnectionType, nil)
	app := tui.New(version, src, selection.NewFileStore(cfg.StateFile))

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running burrow: %v\n", err)
		os.Exit(1)
	}
}
