package restore

import (
	"fmt"

	"github.com/1broseidon/snapdesk/internal/platform"
)

// fakeBackend is an in-memory platform.Backend recording every mutation.
type fakeBackend struct {
	windows  []platform.Window
	desktops []platform.Desktop
	current  platform.Desktop
	displays []platform.Display
	stacking []platform.WindowID

	desktopsErr error
	moveErr     map[platform.WindowID]error

	moved       map[platform.WindowID]platform.Rect
	focused     []platform.WindowID
	redesktoped map[platform.WindowID]platform.Desktop
	activated   []platform.Desktop
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		moveErr:     map[platform.WindowID]error{},
		moved:       map[platform.WindowID]platform.Rect{},
		redesktoped: map[platform.WindowID]platform.Desktop{},
	}
}

func (f *fakeBackend) ListWindows() ([]platform.Window, error) {
	out := make([]platform.Window, len(f.windows))
	copy(out, f.windows)
	return out, nil
}

func (f *fakeBackend) StackingOrder() ([]platform.WindowID, error) {
	return f.stacking, nil
}

func (f *fakeBackend) Desktops() ([]platform.Desktop, error) {
	if f.desktopsErr != nil {
		return nil, f.desktopsErr
	}
	return f.desktops, nil
}

func (f *fakeBackend) CurrentDesktop() (platform.Desktop, error) {
	if f.desktopsErr != nil {
		return platform.Desktop{}, f.desktopsErr
	}
	return f.current, nil
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return f.displays, nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	if err := f.moveErr[id]; err != nil {
		return err
	}
	f.moved[id] = bounds
	return nil
}

func (f *fakeBackend) Focus(id platform.WindowID) error {
	f.focused = append(f.focused, id)
	return nil
}

func (f *fakeBackend) MoveToDesktop(id platform.WindowID, desktop platform.Desktop) error {
	f.redesktoped[id] = desktop
	return nil
}

func (f *fakeBackend) ActivateDesktop(desktop platform.Desktop) error {
	f.activated = append(f.activated, desktop)
	return nil
}

// threeDesktops is a convenient live desktop set for resolver tests.
func threeDesktops() []platform.Desktop {
	out := make([]platform.Desktop, 0, 3)
	for i := 1; i <= 3; i++ {
		out = append(out, platform.Desktop{
			ID:      fmt.Sprintf("desk-%d", i),
			Ordinal: i,
			Name:    fmt.Sprintf("Desktop %d", i),
		})
	}
	return out
}
