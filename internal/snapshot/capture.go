package snapshot

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
)

// Filter restricts which windows a capture records, matched as a
// case-insensitive substring of the executable name. An empty filter keeps
// everything.
type Filter struct {
	// OnlyFamily keeps only windows whose exe contains this substring.
	OnlyFamily string
	// ExcludeFamily drops windows whose exe contains this substring.
	// Ignored when OnlyFamily is set.
	ExcludeFamily string
}

// Keep reports whether a window with the given executable name passes the filter.
func (f Filter) Keep(exe string) bool {
	exe = strings.ToLower(exe)
	if f.OnlyFamily != "" {
		return strings.Contains(exe, strings.ToLower(f.OnlyFamily))
	}
	if f.ExcludeFamily != "" {
		return !strings.Contains(exe, strings.ToLower(f.ExcludeFamily))
	}
	return true
}

// Options controls a capture.
type Options struct {
	Collection string
	Filter     Filter
	// TagZOrder annotates each entry with its stacking rank and sorts the
	// persisted list front-most first.
	TagZOrder bool
	// OnCaptured, when set, receives a structured summary after the snapshot
	// file is written. Callback panics are logged and never undo the write.
	OnCaptured func(Summary)
}

// Capture assembles the current window layout into a new Snapshot. The
// snapshot is not persisted; see Write and CaptureToFile.
func Capture(backend platform.Backend, dir *desktops.Directory, opts Options, logger *slog.Logger) (*Snapshot, error) {
	if err := ValidateCollectionName(opts.Collection); err != nil {
		return nil, err
	}

	logger.Info("starting window enumeration and desktop mapping", "collection", opts.Collection)

	windows, err := backend.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	if opts.Filter != (Filter{}) {
		kept := windows[:0]
		for _, win := range windows {
			if opts.Filter.Keep(win.Exe) {
				kept = append(kept, win)
			}
		}
		windows = kept
		logger.Info("capture filter applied", "windows_retained", len(windows))
	}

	ranks := map[platform.WindowID]int{}
	if opts.TagZOrder {
		stack, err := backend.StackingOrder()
		if err != nil {
			logger.Warn("stacking order unavailable; skipping z-order tagging", "error", err)
		} else {
			for rank, id := range stack {
				ranks[id] = rank
			}
			// Front-most windows first; windows missing from the stacking
			// list sort to the back.
			sort.SliceStable(windows, func(i, j int) bool {
				return zRank(ranks, windows[i].ID) < zRank(ranks, windows[j].ID)
			})
		}
	}

	entries := make([]WindowEntry, 0, len(windows))
	for _, win := range windows {
		entry := WindowEntry{
			Title:         win.Title,
			Exe:           win.Exe,
			X:             win.Bounds.X,
			Y:             win.Bounds.Y,
			Width:         win.Bounds.Width,
			Height:        win.Bounds.Height,
			DesktopID:     win.DesktopID,
			DesktopNumber: win.DesktopOrdinal,
			DesktopName:   win.DesktopName,
		}
		if opts.TagZOrder && len(ranks) > 0 {
			rank := zRank(ranks, win.ID)
			entry.ZOrder = &rank
		}
		entries = append(entries, entry)
	}

	snap := &Snapshot{
		FormatVersion:  FormatVersion,
		CollectionName: opts.Collection,
		CollectionID:   uuid.NewString(),
		CapturedAt:     time.Now().Format(capturedAtLayout),
		Desktops:       dir.NameMap(),
		Windows:        entries,
	}

	logger.Info("captured window layout",
		"collection", opts.Collection,
		"windows", len(entries),
		"desktops", dir.Len())

	return snap, nil
}

// CaptureToFile captures the current layout and persists it under root,
// returning the written file's path.
func CaptureToFile(backend platform.Backend, dir *desktops.Directory, root string, opts Options, logger *slog.Logger) (string, error) {
	snap, err := Capture(backend, dir, opts, logger)
	if err != nil {
		return "", err
	}

	path, err := Write(root, snap)
	if err != nil {
		return "", err
	}
	logger.Info("snapshot written", "path", path)

	if opts.OnCaptured != nil {
		notify(opts.OnCaptured, Summary{
			CollectionName: snap.CollectionName,
			CollectionID:   snap.CollectionID,
			CapturedAt:     snap.CapturedAt,
			WindowCount:    len(snap.Windows),
			DesktopCount:   len(snap.Desktops),
			DesktopNames:   snap.DesktopNames(),
		}, logger)
	}

	return path, nil
}

// notify invokes the capture callback, containing any panic so a misbehaving
// callback cannot make a completed write look failed.
func notify(fn func(Summary), summary Summary, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("capture callback panicked", "panic", r)
		}
	}()
	fn(summary)
}

func zRank(ranks map[platform.WindowID]int, id platform.WindowID) int {
	if rank, ok := ranks[id]; ok {
		return rank
	}
	return int(^uint(0) >> 1) // unknown windows sort last
}
