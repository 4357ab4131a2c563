package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"model-generator/core/checksum"
	"model-generator/core/ignore"
	"model-generator/core/manifest"
)

// ReconcileWithPlan compares the artifacts of a run with the saved manifest and the
// target directory, and returns the resulting plan.
// It does NOT touch the disk; use ApplyPlan for that.
func ReconcileWithPlan(
	ctx context.Context,
	artifacts []Artifact,
	targetDir string,
	manifestName string,
	opts Options,
) (*ReconcilePlan, error) {
	log := opts.logger()

	dir, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target directory: %w", err)
	}

	desiredArtifacts, err := desiredSet(artifacts, log)
	if err != nil {
		return nil, err
	}

	contents := make(map[string][]byte, len(desiredArtifacts))
	for p, a := range desiredArtifacts {
		contents[p] = a.Content
	}
	desired := manifest.FromContents(contents)

	saved, err := manifest.Read(dir, manifestName)
	if err != nil {
		if errors.Is(err, manifest.ErrFormat) {
			return nil, err
		}
		return nil, ioError("read manifest", filepath.Join(dir, manifestName), err)
	}

	onDisk, err := filesystemManifest(ctx, dir, saved, opts.workers())
	if err != nil {
		return nil, err
	}

	matcher := opts.Ignore
	if matcher == nil {
		matcher = ignore.New(dir, log)
	}

	plan := &ReconcilePlan{
		TargetDir:    dir,
		ManifestName: manifestName,
		Desired:      desired,
		Saved:        saved,
		Filesystem:   onDisk,
	}
	if err := buildActions(plan, desiredArtifacts, matcher, opts); err != nil {
		return nil, err
	}

	log.Debug("Reconcile plan built",
		zap.String("target_dir", dir),
		zap.String("manifest", manifestName),
		zap.Int("desired", plan.Summary.Desired),
		zap.Int("saved", plan.Summary.Saved),
		zap.Int("on_disk", plan.Summary.OnDisk),
		zap.Int("deletes", plan.Summary.Deletes),
		zap.Int("writes", plan.Summary.Writes),
		zap.Int("conflicts", plan.Summary.Conflicts),
		zap.Int("ignored", plan.Summary.Ignored),
	)

	return plan, nil
}

// buildActions derives deletes, conflicts, writes and ignore vetoes from the three manifests.
func buildActions(plan *ReconcilePlan, desiredArtifacts map[string]*Artifact, matcher *ignore.Matcher, opts Options) error {
	desiredIndex := plan.Desired.Index()
	savedIndex := plan.Saved.Index()
	diskIndex := plan.Filesystem.Index()

	exemptCache := make(map[string]bool)
	exempt := func(p string) (bool, error) {
		if v, ok := exemptCache[p]; ok {
			return v, nil
		}
		v, err := matcher.ShouldExcludeRel(p)
		if err != nil {
			return false, err
		}
		exemptCache[p] = v
		return v, nil
	}

	var deletes, conflicts, writes, ignored []Action
	seenIgnored := make(map[string]struct{})
	markIgnored := func(p, reason string) {
		if _, ok := seenIgnored[p]; ok {
			return
		}
		seenIgnored[p] = struct{}{}
		ignored = append(ignored, Action{Type: ActionIgnored, Path: p, Reason: reason})
	}

	// Previously generated files that are no longer desired
	for _, e := range plan.Filesystem {
		if _, ok := desiredIndex[e.Path]; ok {
			continue
		}
		skip, err := exempt(e.Path)
		if err != nil {
			return err
		}
		if skip {
			markIgnored(e.Path, "stale file is ignore-exempt")
			continue
		}
		deletes = append(deletes, Action{
			Type:     ActionDelete,
			Path:     e.Path,
			Checksum: e.Checksum,
			Reason:   "no longer generated",
		})
	}

	// Files edited since the last run
	for _, e := range plan.Filesystem {
		savedSum := savedIndex[e.Path]
		if e.Checksum == savedSum {
			continue
		}
		skip, err := exempt(e.Path)
		if err != nil {
			return err
		}
		if skip {
			markIgnored(e.Path, "modified file is ignore-exempt")
			continue
		}
		if !opts.ValidateChecksum {
			continue
		}
		conflicts = append(conflicts, Action{
			Type:     ActionConflict,
			Path:     e.Path,
			Checksum: e.Checksum,
			Reason:   fmt.Sprintf("on-disk checksum %s differs from saved %s", e.Checksum, savedSum),
		})
	}

	// New or changed content
	unchanged := 0
	for _, e := range plan.Desired {
		_, onDisk := diskIndex[e.Path]
		savedSum, inSaved := savedIndex[e.Path]

		var reason string
		switch {
		case !onDisk:
			reason = "missing on disk"
		case !inSaved:
			reason = "not in saved manifest"
		case e.Checksum != savedSum:
			reason = "content changed"
		default:
			unchanged++
			continue
		}

		skip, err := exempt(e.Path)
		if err != nil {
			return err
		}
		if skip {
			markIgnored(e.Path, "generated file is ignore-exempt")
			continue
		}
		writes = append(writes, Action{
			Type:     ActionWrite,
			Path:     e.Path,
			Checksum: e.Checksum,
			Reason:   reason,
			Artifact: desiredArtifacts[e.Path],
		})
	}

	plan.Actions = make([]Action, 0, len(deletes)+len(conflicts)+len(writes)+len(ignored))
	plan.Actions = append(plan.Actions, deletes...)
	plan.Actions = append(plan.Actions, conflicts...)
	plan.Actions = append(plan.Actions, writes...)
	plan.Actions = append(plan.Actions, ignored...)

	plan.Summary = PlanSummary{
		Desired:   len(plan.Desired),
		Saved:     len(plan.Saved),
		OnDisk:    len(plan.Filesystem),
		Deletes:   len(deletes),
		Writes:    len(writes),
		Conflicts: len(conflicts),
		Ignored:   len(ignored),
		Unchanged: unchanged,
	}
	return nil
}

// desiredSet filters artifacts by their include flag and validates them.
// When two artifacts share a path, the first one wins.
func desiredSet(artifacts []Artifact, log *zap.Logger) (map[string]*Artifact, error) {
	desired := make(map[string]*Artifact, len(artifacts))
	for i := range artifacts {
		a := &artifacts[i]
		if !a.Include {
			continue
		}
		if err := manifest.ValidatePath(a.Path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
		}
		if a.Permissions != "" {
			if _, err := ParsePermissions(a.Permissions); err != nil {
				return nil, fmt.Errorf("%s: %w", a.Path, err)
			}
		}
		if _, dup := desired[a.Path]; dup {
			log.Warn("Duplicate artifact path, keeping the first one", zap.String("path", a.Path))
			continue
		}
		desired[a.Path] = a
	}
	return desired, nil
}

// filesystemManifest hashes every saved path that still exists on disk.
func filesystemManifest(ctx context.Context, dir string, saved manifest.Manifest, workers int) (manifest.Manifest, error) {
	var (
		mu      sync.Mutex
		entries = make([]manifest.Entry, 0, len(saved))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, e := range saved {
		e := e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, filepath.FromSlash(e.Path))
			sum, err := checksum.File(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return ioError("hash", path, err)
			}
			mu.Lock()
			entries = append(entries, manifest.Entry{Path: e.Path, Checksum: sum})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return manifest.New(entries), nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
