package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/snapdesk/internal/config"
	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/restore"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

func runCapture(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	onlyFamily := fs.String("only-family", "", "capture only windows whose exe contains this substring")
	excludeFamily := fs.String("exclude-family", "", "exclude windows whose exe contains this substring")
	tagZOrder := fs.Bool("z-order", false, "tag entries with stacking order, front-most first")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdesk capture <collection> [options]")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	collection := fs.Arg(0)

	logger := newLogger(*verbose)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	root, err := snapshotsRoot(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	backend, cleanup, err := platform.Connect(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer cleanup()

	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		if !errors.Is(err, desktops.ErrUnavailable) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		logger.Warn("capturing without desktop assignments", "error", err)
		dir = nil
	}

	opts := snapshot.Options{
		Collection: collection,
		Filter: snapshot.Filter{
			OnlyFamily:    *onlyFamily,
			ExcludeFamily: *excludeFamily,
		},
		TagZOrder: *tagZOrder,
		OnCaptured: func(sum snapshot.Summary) {
			fmt.Printf("Captured %d windows across %d desktops (%s)\n",
				sum.WindowCount, sum.DesktopCount, strings.Join(sum.DesktopNames, " | "))
		},
	}

	path, err := snapshot.CaptureToFile(backend, dir, root, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Capture failed: %v\n", err)
		return 1
	}

	fmt.Println(path)
	return 0
}

func runRestore(args []string) int {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	threshold := fs.Int("threshold", -1, "inclusive minimum match score 0-100 (default from config)")
	noOrigin := fs.Bool("no-return", false, "do not switch back to the starting desktop")
	noBounds := fs.Bool("no-bounds-check", false, "skip display bounds validation")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdesk restore <path|collection> [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "When given a collection name instead of a file path, the newest")
		fmt.Fprintln(os.Stderr, "snapshot in that collection is restored.")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	logger := newLogger(*verbose)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	path, err := resolveSnapshotArg(cfg, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	opts := restore.Options{
		Threshold:        cfg.MatchThreshold,
		ReturnToOrigin:   cfg.ReturnToOrigin && !*noOrigin,
		CheckBounds:      cfg.CheckBounds && !*noBounds,
		BoundsMargin:     cfg.BoundsMargin,
		IgnoredProcesses: cfg.IgnoredProcesses,
	}
	if *threshold >= 0 {
		opts.Threshold = *threshold
	}

	backend, cleanup, err := platform.Connect(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer cleanup()

	summary, err := restore.Run(backend, path, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore failed: %v\n", err)
		return 1
	}

	fmt.Printf("Restored %d, unmatched %d, ignored %d, out-of-bounds %d, failed %d\n",
		summary.Restored, summary.Unmatched, summary.Ignored, summary.OutOfBounds, summary.Failed)
	return 0
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snapdesk list [collection]")
	}
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	root, err := snapshotsRoot(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if fs.NArg() == 0 {
		collections, err := snapshot.ListCollections(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		for _, name := range collections {
			fmt.Println(name)
		}
		return 0
	}

	snaps, err := snapshot.ListSnapshots(root, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, path := range snaps {
		fmt.Println(path)
	}
	return 0
}

// snapshotsRoot resolves the configured snapshot directory.
func snapshotsRoot(cfg *config.Config) (string, error) {
	if cfg.SnapshotsDir != "" {
		return cfg.SnapshotsDir, nil
	}
	return snapshot.DefaultRoot()
}

// resolveSnapshotArg accepts either a snapshot file path or a collection
// name, resolving the latter to its newest snapshot.
func resolveSnapshotArg(cfg *config.Config, arg string) (string, error) {
	if strings.ContainsRune(arg, filepath.Separator) || strings.HasSuffix(arg, ".json") {
		return arg, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	root, err := snapshotsRoot(cfg)
	if err != nil {
		return "", err
	}
	snaps, err := snapshot.ListSnapshots(root, arg)
	if err != nil {
		return "", err
	}
	if len(snaps) == 0 {
		return "", fmt.Errorf("collection %q has no snapshots", arg)
	}
	return snaps[0], nil
}
