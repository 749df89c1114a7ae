package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hegde-atri/wg-burrow/internal/config"
	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/rotor"
	"github.com/hegde-atri/wg-burrow/internal/selection"
)

// main is the entry point for wg-burrow, a status bar helper that rotates through
// NetworkManager WireGuard connections and toggles the selected one.
//
// Usage: wg-burrow [next | previous | --status]
// Any other argument, or none, toggles the current selection.
func main() {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "wg-burrow: ignoring settings: %v\n", err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(os.Stderr, "wg-burrow: ", log.Lmsgprefix)
	}

	src := nm.NewCLI(cfg.Nmcli, cfg.ConnectionType, nil)
	store := selection.NewFileStore(cfg.StateFile)
	dispatcher := rotor.NewDispatcher(src, store, logger)

	payload, err := dispatcher.Run(context.Background(), os.Args[1:])
	if err != nil {
		// without the active state there is nothing truthful to show
		fmt.Fprintf(os.Stderr, "wg-burrow: %v\n", err)
		os.Exit(1)
	}

	if _, err := payload.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "wg-burrow: %v\n", err)
	}
}
