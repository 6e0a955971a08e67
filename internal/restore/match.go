// Package restore reconciles a persisted snapshot against the live window
// set and moves matched windows back into their recorded layout.
package restore

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/1broseidon/snapdesk/internal/platform"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

// MatchResult pairs one snapshot entry with its best live candidate, if any.
// Score is a 0-100 partial-ratio similarity between the titles; it is 0 when
// no live window shares the entry's executable name.
type MatchResult struct {
	Entry  snapshot.WindowEntry
	Window *platform.Window
	Score  int
}

// Match produces one result per snapshot entry, in snapshot order. A live
// window is a candidate only when its executable name equals the entry's
// under case-insensitive comparison; among candidates the highest partial
// title score wins. Ties keep the earliest candidate; candidates are scanned
// in window-ID order so the tie-break is deterministic rather than dependent
// on incidental enumeration order.
func Match(entries []snapshot.WindowEntry, live []platform.Window) []MatchResult {
	candidates := make([]platform.Window, len(live))
	copy(candidates, live)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	results := make([]MatchResult, 0, len(entries))
	for _, entry := range entries {
		result := MatchResult{Entry: entry}
		for i := range candidates {
			win := &candidates[i]
			if !strings.EqualFold(entry.Exe, win.Exe) {
				continue
			}
			score := fuzzy.PartialRatio(entry.Title, win.Title)
			if score > result.Score || result.Window == nil {
				result.Score = score
				result.Window = win
			}
		}
		results = append(results, result)
	}
	return results
}
