package restore

import (
	"log/slog"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

// ResolveDesktop maps a snapshot entry's recorded desktop reference to a
// live desktop. The stable ID is preferred; the 1-based ordinal is a
// deliberate degraded fallback because IDs from a previous session are not
// guaranteed to still exist. Returns false when neither resolves; desktop
// reassignment is best-effort and never blocks the positional restore.
func ResolveDesktop(entry snapshot.WindowEntry, dir *desktops.Directory, logger *slog.Logger) (platform.Desktop, bool) {
	if dir == nil {
		return platform.Desktop{}, false
	}

	if desk, ok := dir.ByID(entry.DesktopID); ok {
		return desk, true
	}
	if desk, ok := dir.ByOrdinal(entry.DesktopNumber); ok {
		return desk, true
	}

	if entry.DesktopID != "" || entry.DesktopNumber != 0 {
		logger.Info("recorded desktop no longer resolvable",
			"title", entry.Title,
			"desktop_id", entry.DesktopID,
			"desktop_number", entry.DesktopNumber,
			"live_desktops", dir.Len())
	}
	return platform.Desktop{}, false
}
