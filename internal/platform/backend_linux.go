//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/snapdesk/internal/x11"
)

// LinuxBackend implements Backend on top of an X11 connection.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LinuxBackend{conn: conn, logger: logger}
}

// Connect opens a fresh X11 connection and returns a backend plus a cleanup
// function that closes it.
func Connect(logger *slog.Logger) (*LinuxBackend, func(), error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	b := NewLinuxBackend(conn, logger)
	return b, func() { conn.Close() }, nil
}

// ListWindows enumerates visible, top-level, titled windows. Per-window
// metadata failures (missing PID, unreadable /proc entry, unassignable
// desktop) degrade that window's fields rather than failing the enumeration.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	clients, err := b.conn.ListClients()
	if err != nil {
		return nil, err
	}

	desktops, err := b.Desktops()
	if err != nil {
		b.logger.Debug("desktop enumeration failed; windows will carry no desktop assignment", "error", err)
		desktops = nil
	}

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !b.conn.IsNormalWindow(windowID) {
			continue
		}

		title := b.conn.WindowTitle(windowID)
		if title == "" {
			continue
		}

		x, y, width, height, err := b.conn.WindowRect(windowID)
		if err != nil {
			continue
		}

		win := Window{
			ID:    WindowID(windowID),
			Title: title,
			Exe:   exeName(b.conn.WindowPID(windowID)),
			Bounds: Rect{
				X:      x,
				Y:      y,
				Width:  width,
				Height: height,
			},
		}

		if ordinal, err := b.conn.GetWindowDesktop(windowID); err == nil && ordinal >= 0 && ordinal < len(desktops) {
			d := desktops[ordinal]
			win.DesktopOrdinal = d.Ordinal
			win.DesktopID = d.ID
			win.DesktopName = d.Name
		} else {
			b.logger.Debug("window not assignable to a virtual desktop",
				"title", title, "exe", win.Exe)
		}

		windows = append(windows, win)
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

// StackingOrder returns window IDs front-to-back.
func (b *LinuxBackend) StackingOrder() ([]WindowID, error) {
	stack, err := b.conn.StackingOrder()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, len(stack))
	for i, win := range stack {
		out[i] = WindowID(win)
	}
	return out, nil
}

// Desktops enumerates virtual desktops. The EWMH desktop name doubles as the
// session-stable identifier when the window manager publishes names; the
// 1-based ordinal is always set.
func (b *LinuxBackend) Desktops() ([]Desktop, error) {
	count, err := b.conn.GetDesktopCount()
	if err != nil {
		return nil, err
	}

	names, err := b.conn.GetDesktopNames()
	if err != nil {
		names = nil
	}

	desktops := make([]Desktop, 0, count)
	for i := 0; i < count; i++ {
		d := Desktop{Ordinal: i + 1}
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			d.Name = strings.TrimSpace(names[i])
			d.ID = d.Name
		} else {
			d.Name = fmt.Sprintf("Desktop %d", i+1)
		}
		desktops = append(desktops, d)
	}

	return desktops, nil
}

// CurrentDesktop returns the desktop that currently has focus.
func (b *LinuxBackend) CurrentDesktop() (Desktop, error) {
	index, err := b.conn.GetCurrentDesktop()
	if err != nil {
		return Desktop{}, err
	}
	desktops, err := b.Desktops()
	if err != nil {
		return Desktop{}, err
	}
	if index < 0 || index >= len(desktops) {
		return Desktop{}, fmt.Errorf("current desktop index %d out of range (%d desktops)", index, len(desktops))
	}
	return desktops[index], nil
}

// Displays returns all connected physical displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:   m.ID,
			Name: m.Name,
			Bounds: Rect{
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			},
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// MoveResize moves and resizes a window, restoring it from a maximized or
// hidden state first.
func (b *LinuxBackend) MoveResize(id WindowID, bounds Rect) error {
	return b.conn.MoveResizeWindow(
		xproto.Window(id),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Focus activates and raises a window.
func (b *LinuxBackend) Focus(id WindowID) error {
	return b.conn.FocusWindow(xproto.Window(id))
}

// MoveToDesktop reassigns a window to the given virtual desktop.
func (b *LinuxBackend) MoveToDesktop(id WindowID, desktop Desktop) error {
	return b.conn.SetWindowDesktop(xproto.Window(id), desktop.Ordinal-1)
}

// ActivateDesktop switches the active virtual desktop.
func (b *LinuxBackend) ActivateDesktop(desktop Desktop) error {
	return b.conn.SwitchDesktop(desktop.Ordinal - 1)
}

// exeName resolves a process's executable name from /proc. Failures fall
// back to an empty name so a single unreadable process never aborts an
// enumeration pass.
func exeName(pid int) string {
	if pid <= 0 {
		return ""
	}
	if target, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid)); err == nil {
		if base := filepath.Base(target); base != "." && base != "/" {
			return base
		}
	}
	// Kernel threads and restricted processes hide the exe link; comm is
	// world-readable.
	if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
