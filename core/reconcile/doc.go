// Package reconcile materializes generated artifacts into a target directory without
// clobbering hand-edited files and without leaving stale files behind.
//
// Every run compares three views of the target directory:
//   - Desired: the artifacts produced by the current generation run (include flag set)
//   - Saved: the manifest written by the previous successful run
//   - Filesystem: the current on-disk digest of every path the saved manifest lists
//
// From these it derives a plan of deletions (previously generated, no longer desired),
// conflicts (on-disk content drifted from the saved digest) and writes (new or changed
// content). Paths matched by a ".generator-ignore" rule are exempt from all three.
//
// # Architecture
//
// The package follows a plan/apply split:
//
//  1. ReconcileWithPlan builds a ReconcilePlan without touching the disk. Filesystem
//     digests are computed concurrently.
//
//  2. ApplyPlan executes the plan phase by phase: deletion, drift check, write, manifest
//     persist. Operations inside a phase touch disjoint paths and run in parallel, bounded
//     by Options.Workers. The phases themselves run strictly in order.
//
//  3. Reconcile is the convenience wrapper that plans and applies in one call.
//
// By default deletions are applied before the drift check can abort the run, so a run
// that fails with a ConflictError may already have removed stale files. Setting
// Options.TwoPhase moves the drift check in front of every mutation.
//
// The new manifest always describes the complete desired set, ignored entries included,
// and fully replaces the previous one.
//
// # Usage Example
//
//	artifacts := []reconcile.Artifact{
//	    reconcile.NewArtifact("a/x.txt", []byte("1")),
//	    reconcile.NewArtifact("a/y.txt", []byte("2")),
//	}
//
//	plan, err := reconcile.Reconcile(ctx, artifacts, "/srv/out", manifest.FileName, reconcile.Options{
//	    ValidateChecksum: true,
//	    Logger:           log,
//	})
//	var conflict *reconcile.ConflictError
//	if errors.As(err, &conflict) {
//	    // conflict.Paths lists every drifted file
//	}
//
// # Concurrency
//
// Two runs against the same target directory must not overlap: the manifest
// read-modify-write is not transactional. Callers serialize runs per directory.
package reconcile
