package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
)

func runDesktops(args []string) int {
	fs := flag.NewFlagSet("desktops", flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdesk desktops")
	}
	fs.Parse(args)

	logger := newLogger(*verbose)

	backend, cleanup, err := platform.Connect(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer cleanup()

	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	current, currentErr := desktops.Current(backend)

	for _, d := range dir.All() {
		marker := " "
		if currentErr == nil && d.Ordinal == current.Ordinal {
			marker = "*"
		}
		fmt.Printf("%s %d  %s\n", marker, d.Ordinal, d.Name)
	}
	return 0
}
