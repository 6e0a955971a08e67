package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "capture":
		os.Exit(runCapture(os.Args[2:]))
	case "restore":
		os.Exit(runRestore(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "desktops":
		os.Exit(runDesktops(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: snapdesk <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  capture <collection>   Capture the current window layout")
	fmt.Fprintln(w, "  restore <path>         Restore a captured layout")
	fmt.Fprintln(w, "  list [collection]      List collections, or snapshots in a collection")
	fmt.Fprintln(w, "  desktops               List virtual desktops")
	fmt.Fprintln(w, "  config                 Print the effective configuration")
	fmt.Fprintln(w, "  mcp                    Run the MCP server on stdio")
	fmt.Fprintln(w, "  help                   Show this help")
}

// newLogger builds the CLI's structured logger.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
