package restore

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

// DefaultThreshold is the inclusive minimum match score for restoring a window.
const DefaultThreshold = 85

// DefaultBoundsMargin is the slack in pixels applied to the display bounds check.
const DefaultBoundsMargin = 20

// Options controls one restore run. The zero value is not useful; use
// DefaultOptions as a starting point.
type Options struct {
	Threshold        int
	ReturnToOrigin   bool
	CheckBounds      bool
	BoundsMargin     int
	IgnoredProcesses []string
}

// DefaultOptions returns the standard restore policy.
func DefaultOptions() Options {
	return Options{
		Threshold:      DefaultThreshold,
		ReturnToOrigin: true,
		BoundsMargin:   DefaultBoundsMargin,
	}
}

// Run restores the layout persisted at path against the current live window
// set. Structural failures (unreadable snapshot, dead window-system
// connection) return an error before any window is touched; all per-window
// faults are isolated into the summary. The run is one-shot: no state is
// retried and there is no mid-batch cancellation.
func Run(backend platform.Backend, path string, opts Options, logger *slog.Logger) (*Summary, error) {
	snap, err := snapshot.Read(path)
	if err != nil {
		return nil, err
	}

	logger.Info("restoring layout",
		"collection", snap.CollectionName,
		"captured_at", snap.CapturedAt,
		"desktops", strings.Join(snap.DesktopNames(), " | "),
		"windows", len(snap.Windows))

	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		if !errors.Is(err, desktops.ErrUnavailable) {
			return nil, err
		}
		// Positional restore still works without desktop information.
		logger.Warn("desktop directory unavailable; skipping desktop reassignment", "error", err)
		dir = nil
	}

	var origin platform.Desktop
	originKnown := false
	if opts.ReturnToOrigin && dir != nil {
		if origin, err = desktops.Current(backend); err != nil {
			logger.Warn("could not determine starting desktop", "error", err)
		} else {
			originKnown = true
		}
	}

	live, err := backend.ListWindows()
	if err != nil {
		return nil, err
	}

	matches := Match(snap.Windows, live)

	applier := &Applier{
		Backend:          backend,
		Dir:              dir,
		Logger:           logger,
		Threshold:        opts.Threshold,
		CheckBounds:      opts.CheckBounds,
		BoundsMargin:     opts.BoundsMargin,
		IgnoredProcesses: opts.IgnoredProcesses,
	}
	summary := applier.Apply(matches)

	if originKnown {
		returnToOrigin(backend, dir, origin, logger)
	}

	return summary, nil
}

// returnToOrigin re-locates the desktop that was active before the restore
// began and activates it. Desktop moves during the batch shift focus, so the
// origin is resolved against the directory rather than trusted blindly.
func returnToOrigin(backend platform.Backend, dir *desktops.Directory, origin platform.Desktop, logger *slog.Logger) {
	target, ok := dir.ByID(origin.ID)
	if !ok {
		target, ok = dir.ByOrdinal(origin.Ordinal)
	}
	if !ok {
		logger.Warn("starting desktop no longer exists", "desktop", origin.Name)
		return
	}
	if err := backend.ActivateDesktop(target); err != nil {
		logger.Warn("could not return to starting desktop", "desktop", target.Name, "error", err)
		return
	}
	logger.Info("returned to starting desktop", "desktop", target.Name)
}
