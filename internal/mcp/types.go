package mcp

// CaptureInput is the input for the capture_snapshot tool.
type CaptureInput struct {
	Collection    string `json:"collection" jsonschema:"required,Name of the collection to store the snapshot under"`
	OnlyFamily    string `json:"only_family,omitempty" jsonschema:"Capture only windows whose executable name contains this substring"`
	ExcludeFamily string `json:"exclude_family,omitempty" jsonschema:"Exclude windows whose executable name contains this substring. Ignored when only_family is set."`
	TagZOrder     bool   `json:"tag_z_order,omitempty" jsonschema:"Annotate entries with stacking order and sort front-most windows first"`
}

// CaptureOutput is the output for the capture_snapshot tool.
type CaptureOutput struct {
	Path         string   `json:"path"`
	CollectionID string   `json:"collection_id"`
	CapturedAt   string   `json:"captured_at"`
	WindowCount  int      `json:"window_count"`
	DesktopCount int      `json:"desktop_count"`
	DesktopNames []string `json:"desktop_names"`
}

// RestoreInput is the input for the restore_snapshot tool.
type RestoreInput struct {
	Path           string `json:"path,omitempty" jsonschema:"Path to the snapshot file. When omitted, the newest snapshot in the collection is used."`
	Collection     string `json:"collection,omitempty" jsonschema:"Collection to restore the newest snapshot from. Ignored when path is set."`
	Threshold      *int   `json:"threshold,omitempty" jsonschema:"Inclusive minimum fuzzy match score 0-100 (default from config)"`
	ReturnToOrigin *bool  `json:"return_to_origin,omitempty" jsonschema:"Switch back to the pre-restore desktop afterwards (default from config)"`
	CheckBounds    *bool  `json:"check_bounds,omitempty" jsonschema:"Skip windows whose recorded position falls outside the current displays (default from config)"`
}

// RestoreOutput is the output for the restore_snapshot tool.
type RestoreOutput struct {
	Path        string `json:"path"`
	Restored    int    `json:"restored"`
	Unmatched   int    `json:"unmatched"`
	Ignored     int    `json:"ignored"`
	OutOfBounds int    `json:"out_of_bounds"`
	Failed      int    `json:"failed"`
}

// ListSnapshotsInput is the input for the list_snapshots tool.
type ListSnapshotsInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"Collection to list snapshots for. When omitted, lists collection names instead."`
}

// ListSnapshotsOutput is the output for the list_snapshots tool.
type ListSnapshotsOutput struct {
	Collections []string `json:"collections,omitempty"`
	Snapshots   []string `json:"snapshots,omitempty"`
}

// ListDesktopsInput is the input for the list_desktops tool.
type ListDesktopsInput struct{}

// DesktopInfo describes one live virtual desktop.
type DesktopInfo struct {
	Ordinal int    `json:"ordinal"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Current bool   `json:"current"`
}

// ListDesktopsOutput is the output for the list_desktops tool.
type ListDesktopsOutput struct {
	Desktops []DesktopInfo `json:"desktops"`
}
