// Package desktops provides a per-operation lookup table over the live
// virtual desktop set. Directories are rebuilt for every capture and restore
// because desktops can be added, removed, or renamed between sessions.
package desktops

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/1broseidon/snapdesk/internal/platform"
)

// ErrUnavailable indicates the window system could not report virtual
// desktop information. Callers should treat this as "no desktop
// reassignment possible" rather than aborting the whole operation.
var ErrUnavailable = errors.New("virtual desktop information unavailable")

// Directory is an ordered view of the live virtual desktops with stable-ID
// and 1-based ordinal lookups. A nil Directory behaves as an empty one, so
// callers that degrade on ErrUnavailable can keep passing it around.
type Directory struct {
	desktops []platform.Desktop
	byID     map[string]platform.Desktop
}

// NewDirectory enumerates the live desktops into a fresh directory.
func NewDirectory(backend platform.Backend) (*Directory, error) {
	list, err := backend.Desktops()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	byID := make(map[string]platform.Desktop, len(list))
	for _, d := range list {
		if d.ID == "" {
			continue
		}
		// First writer wins when the window manager publishes duplicate
		// names; ordinal lookup covers the rest.
		if _, exists := byID[d.ID]; !exists {
			byID[d.ID] = d
		}
	}

	return &Directory{desktops: list, byID: byID}, nil
}

// All returns the desktops in enumeration order.
func (d *Directory) All() []platform.Desktop {
	if d == nil {
		return nil
	}
	return d.desktops
}

// Len returns the number of live desktops.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.desktops)
}

// ByID looks up a desktop by its stable identifier.
func (d *Directory) ByID(id string) (platform.Desktop, bool) {
	if d == nil || id == "" {
		return platform.Desktop{}, false
	}
	desk, ok := d.byID[id]
	return desk, ok
}

// ByOrdinal looks up a desktop by its 1-based position.
func (d *Directory) ByOrdinal(ordinal int) (platform.Desktop, bool) {
	if d == nil || ordinal < 1 || ordinal > len(d.desktops) {
		return platform.Desktop{}, false
	}
	return d.desktops[ordinal-1], true
}

// NameMap returns ordinal-keyed display names for persisting in a snapshot.
func (d *Directory) NameMap() map[string]string {
	out := make(map[string]string, d.Len())
	if d == nil {
		return out
	}
	for _, desk := range d.desktops {
		out[strconv.Itoa(desk.Ordinal)] = desk.Name
	}
	return out
}

// Names returns the display names in enumeration order.
func (d *Directory) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.desktops))
	for _, desk := range d.desktops {
		out = append(out, desk.Name)
	}
	return out
}

// Current returns the desktop that has focus right now.
func Current(backend platform.Backend) (platform.Desktop, error) {
	desk, err := backend.CurrentDesktop()
	if err != nil {
		return platform.Desktop{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return desk, nil
}
