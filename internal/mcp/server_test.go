package mcp

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/snapdesk/internal/config"
	"github.com/1broseidon/snapdesk/internal/platform"
)

type fakeBackend struct {
	windows  []platform.Window
	desktops []platform.Desktop
	moved    map[platform.WindowID]platform.Rect
}

var _ platform.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) ListWindows() ([]platform.Window, error)     { return f.windows, nil }
func (f *fakeBackend) StackingOrder() ([]platform.WindowID, error) { return nil, nil }
func (f *fakeBackend) Desktops() ([]platform.Desktop, error)       { return f.desktops, nil }
func (f *fakeBackend) CurrentDesktop() (platform.Desktop, error)   { return f.desktops[0], nil }
func (f *fakeBackend) Displays() ([]platform.Display, error)       { return nil, nil }
func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.moved[id] = bounds
	return nil
}
func (f *fakeBackend) Focus(platform.WindowID) error { return nil }
func (f *fakeBackend) MoveToDesktop(platform.WindowID, platform.Desktop) error {
	return nil
}
func (f *fakeBackend) ActivateDesktop(platform.Desktop) error { return nil }

func testServer(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SnapshotsDir = t.TempDir()
	cfg.CheckBounds = false

	s := NewServer(cfg, slog.New(slog.DiscardHandler))
	s.connect = func() (platform.Backend, func(), error) {
		return backend, func() {}, nil
	}
	return s
}

func testWorkspaceBackend() *fakeBackend {
	return &fakeBackend{
		moved: map[platform.WindowID]platform.Rect{},
		desktops: []platform.Desktop{
			{ID: "main", Ordinal: 1, Name: "Main"},
			{ID: "web", Ordinal: 2, Name: "Web"},
		},
		windows: []platform.Window{
			{ID: 1, Title: "Inbox", Exe: "chrome", Bounds: platform.Rect{X: 10, Y: 10, Width: 1000, Height: 700}, DesktopOrdinal: 2, DesktopID: "web"},
			{ID: 2, Title: "Shell", Exe: "kitty", Bounds: platform.Rect{X: 40, Y: 40, Width: 800, Height: 600}, DesktopOrdinal: 1, DesktopID: "main"},
		},
	}
}

func TestCaptureThenRestoreTools(t *testing.T) {
	backend := testWorkspaceBackend()
	server := testServer(t, backend)

	_, captured, err := server.handleCapture(context.Background(), nil, CaptureInput{Collection: "work"})
	if err != nil {
		t.Fatalf("capture tool: %v", err)
	}
	if captured.Path == "" || captured.WindowCount != 2 || captured.DesktopCount != 2 {
		t.Fatalf("unexpected capture output: %+v", captured)
	}

	_, restored, err := server.handleRestore(context.Background(), nil, RestoreInput{Collection: "work"})
	if err != nil {
		t.Fatalf("restore tool: %v", err)
	}
	if restored.Path != captured.Path {
		t.Fatalf("expected restore of newest snapshot %q, got %q", captured.Path, restored.Path)
	}
	if restored.Restored != 2 || restored.Failed != 0 {
		t.Fatalf("unexpected restore output: %+v", restored)
	}
	if len(backend.moved) != 2 {
		t.Fatalf("expected both windows moved, got %v", backend.moved)
	}
}

func TestRestoreTool_RequiresPathOrCollection(t *testing.T) {
	server := testServer(t, testWorkspaceBackend())

	_, _, err := server.handleRestore(context.Background(), nil, RestoreInput{})
	if err == nil || !strings.Contains(err.Error(), "path or collection") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListSnapshotsTool(t *testing.T) {
	backend := testWorkspaceBackend()
	server := testServer(t, backend)

	if _, _, err := server.handleCapture(context.Background(), nil, CaptureInput{Collection: "work"}); err != nil {
		t.Fatal(err)
	}

	_, out, err := server.handleListSnapshots(context.Background(), nil, ListSnapshotsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Collections) != 1 || out.Collections[0] != "work" {
		t.Fatalf("unexpected collections: %v", out.Collections)
	}

	_, out, err = server.handleListSnapshots(context.Background(), nil, ListSnapshotsInput{Collection: "work"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Snapshots) != 1 {
		t.Fatalf("unexpected snapshots: %v", out.Snapshots)
	}
}

func TestListDesktopsTool(t *testing.T) {
	backend := testWorkspaceBackend()
	server := testServer(t, backend)

	_, out, err := server.handleListDesktops(context.Background(), nil, ListDesktopsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Desktops) != 2 {
		t.Fatalf("expected 2 desktops, got %v", out.Desktops)
	}
	if !out.Desktops[0].Current || out.Desktops[1].Current {
		t.Fatalf("expected desktop 1 to be current: %+v", out.Desktops)
	}
}
