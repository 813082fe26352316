// Package main starts the deskswipe server or terminal pager.
package main

import (
	"flag"
	"log/slog"
	"os"
)

// main is the entrypoint for deskswipe.
func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	tui := flag.Bool("tui", false, "Run the terminal page switcher instead of the server")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var err error
	if *tui {
		err = runTUI(logger)
	} else {
		err = run(logger)
	}
	if err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
