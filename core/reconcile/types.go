package reconcile

import (
	"go.uber.org/zap"

	"model-generator/core/ignore"
	"model-generator/core/manifest"
)

// Artifact is one candidate output file produced by a generation run.
type Artifact struct {
	// Path is relative to the target directory and uses forward slashes.
	Path string `json:"path"`

	// Content is the exact byte content to write.
	Content []byte `json:"-"`

	// Permissions is an optional POSIX symbolic permission string, e.g. "rwxr-xr-x".
	// Empty leaves the permissions chosen at creation time.
	Permissions string `json:"permissions,omitempty"`

	// Include reports whether the artifact should be materialized at all.
	Include bool `json:"include"`
}

// NewArtifact returns an included artifact without explicit permissions.
func NewArtifact(path string, content []byte) Artifact {
	return Artifact{Path: path, Content: content, Include: true}
}

// ActionType represents the type of filesystem action.
type ActionType string

const (
	// ActionDelete removes a previously generated file that is no longer desired.
	ActionDelete ActionType = "delete"
	// ActionWrite creates or replaces a generated file.
	ActionWrite ActionType = "write"
	// ActionConflict reports a file whose on-disk content drifted from the saved manifest.
	ActionConflict ActionType = "conflict"
	// ActionIgnored reports a path that would have been touched but is ignore-exempt.
	ActionIgnored ActionType = "ignored"
)

// Action represents a planned filesystem operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Path is the target-relative path the action applies to.
	Path string `json:"path"`

	// Checksum is the digest the file will have after a write,
	// or the on-disk digest for deletes and conflicts.
	Checksum string `json:"checksum,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Artifact stores the source for write actions.
	Artifact *Artifact `json:"-"`
}

// ReconcilePlan contains the three manifests of a run and the planned actions.
type ReconcilePlan struct {
	// TargetDir is the absolute directory being reconciled.
	TargetDir string `json:"target_dir"`

	// ManifestName is the manifest file name inside TargetDir.
	ManifestName string `json:"manifest_name"`

	// Desired is the manifest that will be persisted, ignored entries included.
	Desired manifest.Manifest `json:"desired"`

	// Saved is the manifest left by the previous run.
	Saved manifest.Manifest `json:"saved"`

	// Filesystem holds the on-disk digests of the saved paths that still exist.
	Filesystem manifest.Manifest `json:"filesystem"`

	// Actions contains planned operations, grouped by type and sorted by path.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Desired counts included artifacts.
	Desired int `json:"desired"`

	// Saved counts entries in the previous manifest.
	Saved int `json:"saved"`

	// OnDisk counts saved entries whose file still exists.
	OnDisk int `json:"on_disk"`

	// Deletes counts planned deletions.
	Deletes int `json:"deletes"`

	// Writes counts planned writes.
	Writes int `json:"writes"`

	// Conflicts counts drifted files.
	Conflicts int `json:"conflicts"`

	// Ignored counts ignore-exempt paths that would otherwise have been touched.
	Ignored int `json:"ignored"`

	// Unchanged counts desired files already up to date.
	Unchanged int `json:"unchanged"`
}

// Options controls reconcile behavior.
type Options struct {
	// ValidateChecksum refuses to proceed when generated files were edited by hand.
	ValidateChecksum bool

	// TwoPhase runs the drift check before any deletion.
	TwoPhase bool

	// DryRun plans and reports without mutating the target directory.
	DryRun bool

	// Workers bounds the parallelism of each phase. Zero uses GOMAXPROCS.
	Workers int

	// Ignore overrides the ignore matcher. Nil builds one rooted at the target directory.
	Ignore *ignore.Matcher

	// Logger receives phase and per-file logs. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Paths returns the paths of all actions of type t, in plan order.
func (p *ReconcilePlan) Paths(t ActionType) []string {
	var paths []string
	for _, a := range p.Actions {
		if a.Type == t {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// Actionable reports whether applying the plan would change anything on disk
// besides rewriting the manifest.
func (p *ReconcilePlan) Actionable() bool {
	return p.Summary.Deletes > 0 || p.Summary.Writes > 0
}
