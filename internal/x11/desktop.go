package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetDesktopCount returns the number of virtual desktops.
func (c *Connection) GetDesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// GetDesktopNames returns the display names the window manager publishes via
// _NET_DESKTOP_NAMES. The list may be shorter than the desktop count, or
// empty, when the WM doesn't name desktops.
func (c *Connection) GetDesktopNames() ([]string, error) {
	names, err := ewmh.DesktopNamesGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get desktop names: %w", err)
	}
	return names, nil
}

// GetWindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows (visible on all desktops).
// Returns 0 with an error if detection fails.
func (c *Connection) GetWindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return -1, nil
	}
	return int(desktop), nil
}

// SetWindowDesktop moves a window to the specified virtual desktop (0-indexed)
// via a _NET_WM_DESKTOP client message per the EWMH spec.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	const sourceIndication = 2 // pager/direct action
	err := c.sendRootClientMessage(windowID, "_NET_WM_DESKTOP",
		[]uint32{uint32(desktop), sourceIndication, 0, 0, 0})
	if err != nil {
		return fmt.Errorf("failed to move window %d to desktop %d: %w", windowID, desktop, err)
	}
	return nil
}

// SwitchDesktop asks the window manager to activate the given desktop
// (0-indexed) via a _NET_CURRENT_DESKTOP client message.
func (c *Connection) SwitchDesktop(desktop int) error {
	err := c.sendRootClientMessage(c.Root, "_NET_CURRENT_DESKTOP",
		[]uint32{uint32(desktop), xproto.TimeCurrentTime, 0, 0, 0})
	if err != nil {
		return fmt.Errorf("failed to switch to desktop %d: %w", desktop, err)
	}
	return nil
}
