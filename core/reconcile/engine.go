package reconcile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"model-generator/core/manifest"
)

// Reconcile plans and applies a run against targetDir in one call.
// The plan is returned even when applying it fails, so callers can report what was attempted.
func Reconcile(
	ctx context.Context,
	artifacts []Artifact,
	targetDir string,
	manifestName string,
	opts Options,
) (*ReconcilePlan, error) {
	plan, err := ReconcileWithPlan(ctx, artifacts, targetDir, manifestName, opts)
	if err != nil {
		return nil, err
	}

	if _, err := ApplyPlan(ctx, plan, opts); err != nil {
		return plan, err
	}
	return plan, nil
}

// ApplyPlan executes the actions in a reconcile plan and persists the desired manifest.
// Returns the number of files deleted or written and any error encountered.
// With opts.DryRun nothing is mutated; conflicts are still reported.
func ApplyPlan(ctx context.Context, plan *ReconcilePlan, opts Options) (executed int, err error) {
	log := opts.logger().With(
		zap.String("target_dir", plan.TargetDir),
		zap.String("manifest", plan.ManifestName),
	)

	if opts.DryRun {
		log.Info("Dry run, no changes applied",
			zap.Int("deletes", plan.Summary.Deletes),
			zap.Int("writes", plan.Summary.Writes),
		)
		return 0, checkDrift(plan, log)
	}

	if err := os.MkdirAll(plan.TargetDir, 0o755); err != nil {
		return 0, ioError("mkdir", plan.TargetDir, err)
	}

	if opts.TwoPhase {
		if err := checkDrift(plan, log); err != nil {
			return 0, err
		}
	}

	log.Info("Deleting stale files", zap.Int("count", plan.Summary.Deletes))
	n, err := runPhase(ctx, plan, ActionDelete, opts.workers(), func(a Action) error {
		return deleteFile(plan.TargetDir, a, log)
	})
	executed += n
	if err != nil {
		return executed, err
	}

	if !opts.TwoPhase {
		if err := checkDrift(plan, log); err != nil {
			return executed, err
		}
	}

	log.Info("Writing generated files", zap.Int("count", plan.Summary.Writes))
	n, err = runPhase(ctx, plan, ActionWrite, opts.workers(), func(a Action) error {
		return writeFile(plan.TargetDir, a, log)
	})
	executed += n
	if err != nil {
		return executed, err
	}

	manifestPath := filepath.Join(plan.TargetDir, plan.ManifestName)
	if err := manifest.Write(plan.TargetDir, plan.ManifestName, plan.Desired); err != nil {
		return executed, ioError("write manifest", manifestPath, err)
	}
	log.Info("Manifest written", zap.String("path", manifestPath), zap.Int("entries", len(plan.Desired)))

	return executed, nil
}

// RecalculateChecksums rewrites the manifest from the current on-disk content of the
// files it lists. Entries whose file no longer exists are dropped.
func RecalculateChecksums(ctx context.Context, targetDir, manifestName string, opts Options) (manifest.Manifest, error) {
	dir, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, err
	}

	saved, err := manifest.Read(dir, manifestName)
	if err != nil {
		return nil, err
	}

	onDisk, err := filesystemManifest(ctx, dir, saved, opts.workers())
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return onDisk, nil
	}
	if err := manifest.Write(dir, manifestName, onDisk); err != nil {
		return nil, ioError("write manifest", filepath.Join(dir, manifestName), err)
	}

	opts.logger().Info("Checksums recalculated",
		zap.String("target_dir", dir),
		zap.String("manifest", manifestName),
		zap.Int("entries", len(onDisk)),
		zap.Int("dropped", len(saved)-len(onDisk)),
	)
	return onDisk, nil
}

func checkDrift(plan *ReconcilePlan, log *zap.Logger) error {
	paths := plan.Paths(ActionConflict)
	if len(paths) == 0 {
		return nil
	}
	for _, p := range paths {
		log.Warn("Generated file was modified", zap.String("path", p))
	}
	return &ConflictError{Paths: paths}
}

// runPhase executes fn for every action of type t concurrently.
// The first failure cancels the actions that have not started yet.
func runPhase(ctx context.Context, plan *ReconcilePlan, t ActionType, workers int, fn func(Action) error) (int, error) {
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, a := range plan.Actions {
		if a.Type != t {
			continue
		}
		a := a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(a); err != nil {
				return err
			}
			done.Add(1)
			return nil
		})
	}
	err := g.Wait()
	return int(done.Load()), err
}

func deleteFile(dir string, a Action, log *zap.Logger) error {
	path := filepath.Join(dir, filepath.FromSlash(a.Path))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError("delete", path, err)
	}
	log.Debug("Deleted stale file", zap.String("path", a.Path))
	return nil
}

func writeFile(dir string, a Action, log *zap.Logger) error {
	path := filepath.Join(dir, filepath.FromSlash(a.Path))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ioError("mkdir", filepath.Dir(path), err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError("delete", path, err)
	}
	if err := os.WriteFile(path, a.Artifact.Content, 0o644); err != nil {
		return ioError("write", path, err)
	}

	if a.Artifact.Permissions != "" {
		mode, err := ParsePermissions(a.Artifact.Permissions)
		if err != nil {
			return err
		}
		if err := applyPermissions(path, mode, log); err != nil {
			return ioError("chmod", path, err)
		}
	}

	log.Debug("Wrote generated file",
		zap.String("path", a.Path),
		zap.String("checksum", a.Checksum),
		zap.String("reason", a.Reason),
	)
	return nil
}
