package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultRoot returns the default snapshots directory.
func DefaultRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snapdesk", "snapshots"), nil
}

// ValidateCollectionName rejects names that would escape the snapshots
// directory or produce unusable paths.
func ValidateCollectionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if strings.Contains(name, string(os.PathSeparator)) || name != filepath.Base(name) {
		return fmt.Errorf("invalid collection name %q", name)
	}
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return fmt.Errorf("invalid collection name %q", name)
	}
	return nil
}

// Write persists a snapshot under root/<collection>/, creating the directory
// if absent, and returns the written path. The file is written to a
// temporary name and renamed into place so no reader ever observes a partial
// snapshot. If a capture in the same minute already produced the target
// name, a "-2", "-3", ... suffix disambiguates instead of overwriting.
func Write(root string, snap *Snapshot) (string, error) {
	if snap == nil {
		return "", fmt.Errorf("snapshot is nil")
	}
	if err := ValidateCollectionName(snap.CollectionName); err != nil {
		return "", err
	}

	dir := filepath.Join(root, snap.CollectionName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create collection directory: %w", err)
	}

	path, err := nextFreePath(dir, fileTimestamp(snap.CapturedAt))
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	return path, nil
}

// Read loads and validates a snapshot file. Unreadable or malformed files
// yield ErrInvalidSnapshot.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListCollections returns the collection names under root, sorted.
func ListCollections(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			out = append(out, entry.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListSnapshots returns snapshot file paths in a collection, newest first.
func ListSnapshots(root, collection string) ([]string, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, collection)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshots for %q: %w", collection, err)
	}

	type dated struct {
		path    string
		modTime time.Time
	}
	var files []dated
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, dated{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.After(files[j].modTime)
		}
		return files[i].path > files[j].path
	})

	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.path)
	}
	return out, nil
}

// Delete removes a snapshot file.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", path, err)
	}
	return nil
}

// fileTimestamp converts a recorded capture time into its filename form,
// e.g. "02-Jan-2006 15:04" -> "02-Jan-2006_1504".
func fileTimestamp(capturedAt string) string {
	if ts, err := time.Parse(capturedAtLayout, capturedAt); err == nil {
		return ts.Format("02-Jan-2006_1504")
	}
	return time.Now().Format("02-Jan-2006_1504")
}

// nextFreePath finds the first unused snapshot filename for the timestamp.
func nextFreePath(dir, stamp string) (string, error) {
	base := filepath.Join(dir, "snapshot_"+stamp)
	path := base + ".json"
	for seq := 2; ; seq++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to probe snapshot path: %w", err)
		}
		path = fmt.Sprintf("%s-%d.json", base, seq)
	}
}
