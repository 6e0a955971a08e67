package platform

// WindowID is a platform-neutral window identifier. It is unique within one
// enumeration pass but not stable across reboots.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Desktop identifies one virtual desktop. ID is a best-effort session-stable
// identifier and may be empty when the window system provides none; Ordinal
// is the 1-based position in the current enumeration order and is only valid
// within the enumeration that produced it.
type Desktop struct {
	ID      string
	Ordinal int
	Name    string
}

// Window contains metadata and geometry for a visible top-level window.
// DesktopOrdinal is 0 when the window could not be assigned to any desktop
// (e.g. sticky windows shown on all desktops).
type Window struct {
	ID             WindowID
	Title          string
	Exe            string
	Bounds         Rect
	DesktopOrdinal int
	DesktopID      string
	DesktopName    string
}

// Backend abstracts window-system operations across platforms. All reads
// reflect live state at call time; nothing is cached between calls.
type Backend interface {
	// ListWindows returns every visible, top-level, titled window.
	ListWindows() ([]Window, error)
	// StackingOrder returns window IDs front-to-back.
	StackingOrder() ([]WindowID, error)
	// Desktops returns the virtual desktops in enumeration order.
	Desktops() ([]Desktop, error)
	// CurrentDesktop returns the desktop that currently has focus.
	CurrentDesktop() (Desktop, error)
	// Displays returns all connected physical displays.
	Displays() ([]Display, error)

	MoveResize(id WindowID, bounds Rect) error
	Focus(id WindowID) error
	MoveToDesktop(id WindowID, desktop Desktop) error
	ActivateDesktop(desktop Desktop) error
}
