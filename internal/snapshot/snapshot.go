// Package snapshot captures live window layouts into persisted, versioned
// records and reads them back for restore.
package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// FormatVersion is written into every snapshot for forward compatibility.
const FormatVersion = "1.0"

// capturedAtLayout is the human-readable timestamp format used both inside
// the record and (with filesystem-safe separators) in filenames.
const capturedAtLayout = "02-Jan-2006 15:04"

// ErrInvalidSnapshot indicates a malformed or unreadable snapshot file.
// Restores fail fast on this error before any window is touched.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// WindowEntry is a single window's persisted state. Entries are immutable
// once written.
type WindowEntry struct {
	Title  string `json:"title"`
	Exe    string `json:"exe"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// DesktopID is the stable desktop identifier at capture time; it is not
	// guaranteed to still exist at restore time.
	DesktopID string `json:"desktop_id,omitempty"`
	// DesktopNumber is the 1-based ordinal fallback used when DesktopID no
	// longer resolves.
	DesktopNumber int    `json:"desktop_number,omitempty"`
	DesktopName   string `json:"desktop_name,omitempty"`
	// ZOrder is the front-to-back stacking rank at capture time; lower is
	// more front-facing. Only present when the capture tagged Z-order.
	ZOrder *int `json:"z_order,omitempty"`
}

// Snapshot is the persisted unit of work: one point-in-time window layout.
// Snapshots are superseded by re-capture, never mutated in place.
type Snapshot struct {
	FormatVersion  string            `json:"format_version"`
	CollectionName string            `json:"collection_name"`
	CollectionID   string            `json:"collection_id"`
	CapturedAt     string            `json:"captured_at"`
	Desktops       map[string]string `json:"desktops"`
	Windows        []WindowEntry     `json:"windows"`
}

// Validate checks the structural invariants a restore depends on.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
	}
	if s.FormatVersion == "" {
		return fmt.Errorf("%w: missing format_version", ErrInvalidSnapshot)
	}
	for i, win := range s.Windows {
		if win.Title == "" && win.Exe == "" {
			return fmt.Errorf("%w: window %d has neither title nor exe", ErrInvalidSnapshot, i)
		}
		if win.Width < 0 || win.Height < 0 {
			return fmt.Errorf("%w: window %d has negative dimensions", ErrInvalidSnapshot, i)
		}
	}
	return nil
}

// DesktopNames returns the display names recorded in the desktop map, in
// ordinal order where the keys are ordinals.
func (s *Snapshot) DesktopNames() []string {
	keys := make([]string, 0, len(s.Desktops))
	for key := range s.Desktops {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, erri := strconv.Atoi(keys[i])
		nj, errj := strconv.Atoi(keys[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.Desktops[key])
	}
	return out
}

// Summary is the structured capture report handed to an optional caller
// callback after a successful write.
type Summary struct {
	CollectionName string   `json:"collection_name"`
	CollectionID   string   `json:"collection_id"`
	CapturedAt     string   `json:"captured_at"`
	WindowCount    int      `json:"window_count"`
	DesktopCount   int      `json:"desktop_count"`
	DesktopNames   []string `json:"desktop_names"`
}
