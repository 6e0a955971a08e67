package restore

import (
	"errors"
	"testing"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

func newApplier(backend *fakeBackend, dir *desktops.Directory) *Applier {
	return &Applier{
		Backend:      backend,
		Dir:          dir,
		Logger:       discardLogger(),
		Threshold:    DefaultThreshold,
		BoundsMargin: DefaultBoundsMargin,
	}
}

func matchedPair(id platform.WindowID, title, exe string, score int) MatchResult {
	return MatchResult{
		Entry:  snapshot.WindowEntry{Title: title, Exe: exe, X: 10, Y: 10, Width: 640, Height: 480},
		Window: &platform.Window{ID: id, Title: title, Exe: exe},
		Score:  score,
	}
}

func TestApply_ThresholdIsInclusive(t *testing.T) {
	// PartialRatio("abcd", "abxd") is exactly 75.
	entry := snapshot.WindowEntry{Title: "abcd", Exe: "app", X: 0, Y: 0, Width: 100, Height: 100}
	live := []platform.Window{{ID: 1, Title: "abxd", Exe: "app"}}
	matches := Match([]snapshot.WindowEntry{entry}, live)
	if matches[0].Score != 75 {
		t.Fatalf("expected partial score 75, got %d", matches[0].Score)
	}

	backend := newFakeBackend()
	applier := newApplier(backend, nil)

	applier.Threshold = 75
	summary := applier.Apply(matches)
	if summary.Restored != 1 {
		t.Fatalf("score equal to threshold must restore, got %+v", summary)
	}

	backend = newFakeBackend()
	applier.Backend = backend
	applier.Threshold = 76
	summary = applier.Apply(matches)
	if summary.Restored != 0 || summary.Unmatched != 1 {
		t.Fatalf("score below threshold must not restore, got %+v", summary)
	}
	if len(backend.moved) != 0 {
		t.Fatal("below-threshold entry must not invoke move")
	}
}

func TestApply_OutOfBoundsSkipsWithoutMoving(t *testing.T) {
	backend := newFakeBackend()
	backend.displays = []platform.Display{
		{ID: 0, Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
	}

	m := matchedPair(1, "Stranded", "app", 100)
	m.Entry.X = -5000

	applier := newApplier(backend, nil)
	applier.CheckBounds = true
	summary := applier.Apply([]MatchResult{m})

	if summary.OutOfBounds != 1 {
		t.Fatalf("expected out-of-bounds skip, got %+v", summary)
	}
	if len(backend.moved) != 0 {
		t.Fatal("out-of-bounds entry must never invoke move/resize")
	}
}

func TestApply_BoundsMarginAllowsSlightOverhang(t *testing.T) {
	backend := newFakeBackend()
	backend.displays = []platform.Display{
		{ID: 0, Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
	}

	m := matchedPair(1, "Edge", "app", 100)
	m.Entry.X = -15 // inside the 20px margin

	applier := newApplier(backend, nil)
	applier.CheckBounds = true
	summary := applier.Apply([]MatchResult{m})

	if summary.Restored != 1 {
		t.Fatalf("expected restore within margin, got %+v", summary)
	}
}

func TestApply_UnionBoundsSpanMultipleDisplays(t *testing.T) {
	backend := newFakeBackend()
	backend.displays = []platform.Display{
		{ID: 0, Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{ID: 1, Bounds: platform.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}

	m := matchedPair(1, "Second Screen", "app", 100)
	m.Entry.X = 2500

	applier := newApplier(backend, nil)
	applier.CheckBounds = true
	summary := applier.Apply([]MatchResult{m})

	if summary.Restored != 1 {
		t.Fatalf("expected position on second display to pass, got %+v", summary)
	}
}

func TestApply_IgnoreListEnforced(t *testing.T) {
	backend := newFakeBackend()
	applier := newApplier(backend, nil)
	applier.IgnoredProcesses = []string{"Kiosk-Agent"}

	matches := []MatchResult{
		matchedPair(1, "Desktop", "gnome-shell", 100), // builtin
		matchedPair(2, "Kiosk", "kiosk-agent", 100),   // configured, case-insensitive
	}
	summary := applier.Apply(matches)

	if summary.Ignored != 2 {
		t.Fatalf("expected both entries ignored, got %+v", summary)
	}
	if len(backend.moved) != 0 {
		t.Fatal("ignored entries must never be moved")
	}
}

func TestApply_FaultIsolation(t *testing.T) {
	backend := newFakeBackend()
	backend.moveErr[2] = errors.New("access denied")

	matches := []MatchResult{
		matchedPair(1, "First", "app", 100),
		matchedPair(2, "Second", "app", 100),
		matchedPair(3, "Third", "app", 100),
	}

	summary := newApplier(backend, nil).Apply(matches)

	if summary.Restored != 2 || summary.Failed != 1 {
		t.Fatalf("expected 2 restored and 1 failed, got %+v", summary)
	}
	if summary.Results[0].Outcome != OutcomeRestored ||
		summary.Results[1].Outcome != OutcomeFailed ||
		summary.Results[2].Outcome != OutcomeRestored {
		t.Fatalf("unexpected outcome sequence: %v, %v, %v",
			summary.Results[0].Outcome, summary.Results[1].Outcome, summary.Results[2].Outcome)
	}
	if summary.Results[1].Err == nil {
		t.Fatal("failed result must carry its error")
	}
	if _, ok := backend.moved[1]; !ok {
		t.Fatal("first window should have been moved")
	}
	if _, ok := backend.moved[3]; !ok {
		t.Fatal("third window should still be processed after the second failed")
	}
}

func TestApply_DesktopReassignment(t *testing.T) {
	backend := newFakeBackend()
	backend.desktops = threeDesktops()
	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}

	m := matchedPair(1, "Editor", "code", 100)
	m.Entry.DesktopID = "desk-2"
	m.Entry.DesktopNumber = 2

	summary := newApplier(backend, dir).Apply([]MatchResult{m})

	if summary.Restored != 1 {
		t.Fatalf("expected restore, got %+v", summary)
	}
	if desk, ok := backend.redesktoped[1]; !ok || desk.Ordinal != 2 {
		t.Fatalf("expected window moved to desktop 2, got %+v", backend.redesktoped)
	}
}

func TestApply_MoveAppliesRecordedGeometry(t *testing.T) {
	backend := newFakeBackend()

	m := matchedPair(5, "Budget - Excel", "excel", 100)
	m.Entry.X, m.Entry.Y, m.Entry.Width, m.Entry.Height = 100, 100, 800, 600

	newApplier(backend, nil).Apply([]MatchResult{m})

	want := platform.Rect{X: 100, Y: 100, Width: 800, Height: 600}
	if got := backend.moved[5]; got != want {
		t.Fatalf("expected move to %+v, got %+v", want, got)
	}
	if len(backend.focused) != 1 || backend.focused[0] != 5 {
		t.Fatalf("expected window 5 raised, got %v", backend.focused)
	}
}
