package restore

import (
	"log/slog"
	"testing"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

func testDirectory(t *testing.T) *desktops.Directory {
	t.Helper()
	backend := newFakeBackend()
	backend.desktops = threeDesktops()
	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	return dir
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestResolveDesktop_StableIDPreferred(t *testing.T) {
	dir := testDirectory(t)

	// The ordinal deliberately disagrees with the ID; the ID wins.
	entry := snapshot.WindowEntry{DesktopID: "desk-3", DesktopNumber: 1}
	desk, ok := ResolveDesktop(entry, dir, discardLogger())
	if !ok {
		t.Fatal("expected resolution by stable ID")
	}
	if desk.Ordinal != 3 {
		t.Fatalf("expected desktop 3, got %d", desk.Ordinal)
	}
}

func TestResolveDesktop_FallsBackToOrdinal(t *testing.T) {
	dir := testDirectory(t)

	entry := snapshot.WindowEntry{DesktopID: "gone-from-live-set", DesktopNumber: 2}
	desk, ok := ResolveDesktop(entry, dir, discardLogger())
	if !ok {
		t.Fatal("expected fallback to ordinal index")
	}
	if desk.Ordinal != 2 {
		t.Fatalf("expected desktop at ordinal 2, got %d", desk.Ordinal)
	}
}

func TestResolveDesktop_Unresolvable(t *testing.T) {
	dir := testDirectory(t)

	cases := []snapshot.WindowEntry{
		{},                                     // sticky window, nothing recorded
		{DesktopID: "stale", DesktopNumber: 9}, // ordinal beyond live count
		{DesktopNumber: 0},
	}
	for _, entry := range cases {
		if _, ok := ResolveDesktop(entry, dir, discardLogger()); ok {
			t.Fatalf("expected no resolution for %+v", entry)
		}
	}
}

func TestResolveDesktop_NilDirectory(t *testing.T) {
	entry := snapshot.WindowEntry{DesktopID: "desk-1", DesktopNumber: 1}
	if _, ok := ResolveDesktop(entry, nil, discardLogger()); ok {
		t.Fatal("expected no resolution without a directory")
	}
}
