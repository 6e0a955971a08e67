package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/snapdesk/internal/desktops"
	"github.com/1broseidon/snapdesk/internal/restore"
	"github.com/1broseidon/snapdesk/internal/snapshot"
)

func (s *Server) handleCapture(_ context.Context, _ *mcpsdk.CallToolRequest, args CaptureInput) (*mcpsdk.CallToolResult, CaptureOutput, error) {
	root, err := s.snapshotsRoot()
	if err != nil {
		return nil, CaptureOutput{}, err
	}

	backend, cleanup, err := s.connect()
	if err != nil {
		return nil, CaptureOutput{}, err
	}
	defer cleanup()

	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		if !errors.Is(err, desktops.ErrUnavailable) {
			return nil, CaptureOutput{}, err
		}
		s.logger.Warn("capturing without desktop assignments", "error", err)
		dir = nil
	}

	var out CaptureOutput
	opts := snapshot.Options{
		Collection: args.Collection,
		Filter: snapshot.Filter{
			OnlyFamily:    args.OnlyFamily,
			ExcludeFamily: args.ExcludeFamily,
		},
		TagZOrder: args.TagZOrder,
		OnCaptured: func(sum snapshot.Summary) {
			out.CollectionID = sum.CollectionID
			out.CapturedAt = sum.CapturedAt
			out.WindowCount = sum.WindowCount
			out.DesktopCount = sum.DesktopCount
			out.DesktopNames = sum.DesktopNames
		},
	}

	path, err := snapshot.CaptureToFile(backend, dir, root, opts, s.logger)
	if err != nil {
		return nil, CaptureOutput{}, err
	}
	out.Path = path

	return nil, out, nil
}

func (s *Server) handleRestore(_ context.Context, _ *mcpsdk.CallToolRequest, args RestoreInput) (*mcpsdk.CallToolResult, RestoreOutput, error) {
	path := args.Path
	if path == "" {
		if args.Collection == "" {
			return nil, RestoreOutput{}, fmt.Errorf("either path or collection is required")
		}
		root, err := s.snapshotsRoot()
		if err != nil {
			return nil, RestoreOutput{}, err
		}
		snaps, err := snapshot.ListSnapshots(root, args.Collection)
		if err != nil {
			return nil, RestoreOutput{}, err
		}
		if len(snaps) == 0 {
			return nil, RestoreOutput{}, fmt.Errorf("collection %q has no snapshots", args.Collection)
		}
		path = snaps[0]
	}

	opts := restore.Options{
		Threshold:        s.config.MatchThreshold,
		ReturnToOrigin:   s.config.ReturnToOrigin,
		CheckBounds:      s.config.CheckBounds,
		BoundsMargin:     s.config.BoundsMargin,
		IgnoredProcesses: s.config.IgnoredProcesses,
	}
	if args.Threshold != nil {
		opts.Threshold = *args.Threshold
	}
	if args.ReturnToOrigin != nil {
		opts.ReturnToOrigin = *args.ReturnToOrigin
	}
	if args.CheckBounds != nil {
		opts.CheckBounds = *args.CheckBounds
	}

	backend, cleanup, err := s.connect()
	if err != nil {
		return nil, RestoreOutput{}, err
	}
	defer cleanup()

	summary, err := restore.Run(backend, path, opts, s.logger)
	if err != nil {
		return nil, RestoreOutput{}, err
	}

	return nil, RestoreOutput{
		Path:        path,
		Restored:    summary.Restored,
		Unmatched:   summary.Unmatched,
		Ignored:     summary.Ignored,
		OutOfBounds: summary.OutOfBounds,
		Failed:      summary.Failed,
	}, nil
}

func (s *Server) handleListSnapshots(_ context.Context, _ *mcpsdk.CallToolRequest, args ListSnapshotsInput) (*mcpsdk.CallToolResult, ListSnapshotsOutput, error) {
	root, err := s.snapshotsRoot()
	if err != nil {
		return nil, ListSnapshotsOutput{}, err
	}

	if args.Collection == "" {
		collections, err := snapshot.ListCollections(root)
		if err != nil {
			return nil, ListSnapshotsOutput{}, err
		}
		return nil, ListSnapshotsOutput{Collections: collections}, nil
	}

	snaps, err := snapshot.ListSnapshots(root, args.Collection)
	if err != nil {
		return nil, ListSnapshotsOutput{}, err
	}
	return nil, ListSnapshotsOutput{Snapshots: snaps}, nil
}

func (s *Server) handleListDesktops(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDesktopsInput) (*mcpsdk.CallToolResult, ListDesktopsOutput, error) {
	backend, cleanup, err := s.connect()
	if err != nil {
		return nil, ListDesktopsOutput{}, err
	}
	defer cleanup()

	dir, err := desktops.NewDirectory(backend)
	if err != nil {
		return nil, ListDesktopsOutput{}, err
	}

	current, err := desktops.Current(backend)
	if err != nil {
		s.logger.Warn("could not determine current desktop", "error", err)
	}

	out := ListDesktopsOutput{}
	for _, d := range dir.All() {
		out.Desktops = append(out.Desktops, DesktopInfo{
			Ordinal: d.Ordinal,
			ID:      d.ID,
			Name:    d.Name,
			Current: err == nil && d.Ordinal == current.Ordinal,
		})
	}
	return nil, out, nil
}
