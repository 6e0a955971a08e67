package restore

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

// builtinIgnored lists desktop-shell processes that must never be
// programmatically repositioned.
var builtinIgnored = []string{
	"plasmashell",
	"gnome-shell",
	"xfdesktop",
	"polybar",
}

// Outcome classifies what happened to one snapshot entry during a restore.
type Outcome int

const (
	OutcomeRestored Outcome = iota
	OutcomeNoMatch
	OutcomeIgnored
	OutcomeOutOfBounds
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRestored:
		return "restored"
	case OutcomeNoMatch:
		return "no-match"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records one entry's outcome. Err is set only for OutcomeFailed.
type Result struct {
	Entry   snapshot.WindowEntry
	Outcome Outcome
	Score   int
	Err     error
}

// Summary aggregates per-entry results for a whole restore batch.
type Summary struct {
	Results     []Result
	Restored    int
	Unmatched   int
	Ignored     int
	OutOfBounds int
	Failed      int
}

func (s *Summary) record(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeRestored:
		s.Restored++
	case OutcomeNoMatch:
		s.Unmatched++
	case OutcomeIgnored:
		s.Ignored++
	case OutcomeOutOfBounds:
		s.OutOfBounds++
	case OutcomeFailed:
		s.Failed++
	}
}

// bounds is the union bounding box of all connected displays.
type bounds struct {
	xMin, yMin, xMax, yMax int
}

// contains reports whether a window anchored at (x, y) keeps a grabbable
// title bar inside the display area, allowing margin pixels of slack.
func (b bounds) contains(x, y, margin int) bool {
	return b.xMin-margin <= x && x <= b.xMax-margin &&
		b.yMin <= y && y <= b.yMax-margin
}

func unionBounds(displays []platform.Display) (bounds, bool) {
	if len(displays) == 0 {
		return bounds{}, false
	}
	b := bounds{
		xMin: displays[0].Bounds.X,
		yMin: displays[0].Bounds.Y,
		xMax: displays[0].Bounds.X + displays[0].Bounds.Width,
		yMax: displays[0].Bounds.Y + displays[0].Bounds.Height,
	}
	for _, d := range displays[1:] {
		b.xMin = min(b.xMin, d.Bounds.X)
		b.yMin = min(b.yMin, d.Bounds.Y)
		b.xMax = max(b.xMax, d.Bounds.X+d.Bounds.Width)
		b.yMax = max(b.yMax, d.Bounds.Y+d.Bounds.Height)
	}
	return b, true
}

// Applier carries the collaborators and policy for applying matched windows.
type Applier struct {
	Backend platform.Backend
	Dir     *desktops.Directory
	Logger  *slog.Logger

	// Threshold is the inclusive minimum match score for restoring a window.
	Threshold int
	// CheckBounds skips entries whose recorded top-left corner falls outside
	// the union bounding box of all connected displays.
	CheckBounds bool
	// BoundsMargin is the slack in pixels applied to the bounds check.
	BoundsMargin int
	// IgnoredProcesses are extra executable names (case-insensitive) that are
	// never repositioned, merged with the builtin shell-process list.
	IgnoredProcesses []string
}

// Apply restores every sufficiently matched window, in snapshot order. Each
// entry's outcome is captured independently; one stuck or access-denied
// window never aborts the batch.
func (a *Applier) Apply(matches []MatchResult) *Summary {
	ignored := make(map[string]struct{}, len(builtinIgnored)+len(a.IgnoredProcesses))
	for _, exe := range builtinIgnored {
		ignored[exe] = struct{}{}
	}
	for _, exe := range a.IgnoredProcesses {
		ignored[strings.ToLower(strings.TrimSpace(exe))] = struct{}{}
	}

	var displayBounds bounds
	boundsKnown := false
	if a.CheckBounds {
		displays, err := a.Backend.Displays()
		if err != nil {
			a.Logger.Warn("display enumeration failed; bounds check disabled", "error", err)
		} else if displayBounds, boundsKnown = unionBounds(displays); boundsKnown {
			a.Logger.Info("display bounds",
				"x_min", displayBounds.xMin, "x_max", displayBounds.xMax,
				"y_min", displayBounds.yMin, "y_max", displayBounds.yMax)
		}
	}

	summary := &Summary{}
	for _, m := range matches {
		summary.record(a.applyOne(m, ignored, displayBounds, boundsKnown))
	}

	a.Logger.Info("restore batch complete",
		"restored", summary.Restored,
		"unmatched", summary.Unmatched,
		"ignored", summary.Ignored,
		"out_of_bounds", summary.OutOfBounds,
		"failed", summary.Failed)

	return summary
}

func (a *Applier) applyOne(m MatchResult, ignored map[string]struct{}, displayBounds bounds, boundsKnown bool) Result {
	entry := m.Entry

	if m.Window == nil || m.Score < a.Threshold {
		a.Logger.Info("no match", "title", entry.Title, "exe", entry.Exe, "best_score", m.Score)
		return Result{Entry: entry, Outcome: OutcomeNoMatch, Score: m.Score}
	}

	if _, skip := ignored[strings.ToLower(entry.Exe)]; skip {
		a.Logger.Info("skipping known system window", "exe", entry.Exe)
		return Result{Entry: entry, Outcome: OutcomeIgnored, Score: m.Score}
	}

	if boundsKnown && !displayBounds.contains(entry.X, entry.Y, a.BoundsMargin) {
		a.Logger.Warn("recorded position outside current display bounds",
			"title", entry.Title, "x", entry.X, "y", entry.Y)
		return Result{Entry: entry, Outcome: OutcomeOutOfBounds, Score: m.Score}
	}

	target := platform.Rect{X: entry.X, Y: entry.Y, Width: entry.Width, Height: entry.Height}
	if err := a.moveAndRaise(m.Window.ID, target); err != nil {
		a.Logger.Warn("window operation failed",
			"title", entry.Title, "window_id", m.Window.ID, "error", err)
		return Result{Entry: entry, Outcome: OutcomeFailed, Score: m.Score, Err: err}
	}

	// Desktop reassignment is independent of the positional restore; a
	// failure here still counts the window as restored.
	if desk, ok := ResolveDesktop(entry, a.Dir, a.Logger); ok {
		if err := a.Backend.MoveToDesktop(m.Window.ID, desk); err != nil {
			a.Logger.Warn("failed to move window to desktop",
				"title", entry.Title, "window_id", m.Window.ID,
				"desktop", desk.Name, "error", err)
		}
	}

	a.Logger.Info("restored",
		"from", entry.Title, "to", m.Window.Title, "score", m.Score)
	return Result{Entry: entry, Outcome: OutcomeRestored, Score: m.Score}
}

// moveAndRaise repositions a window and brings it to the foreground. The
// backend restores minimized/maximized windows to normal as part of the move.
func (a *Applier) moveAndRaise(id platform.WindowID, target platform.Rect) error {
	if err := a.Backend.MoveResize(id, target); err != nil {
		return fmt.Errorf("move/resize: %w", err)
	}
	if err := a.Backend.Focus(id); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	return nil
}
