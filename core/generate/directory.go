package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"model-generator/core/expr"
	"model-generator/core/manifest"
	"model-generator/core/model"
	"model-generator/core/reconcile"

	"go.uber.org/zap"
)

// DefaultActorDir places each actor partition in a directory named after the actor.
const DefaultActorDir = "${actor.name}"

// Target describes where a result is reconciled.
type Target struct {
	// Dir receives the main partition.
	Dir string
	// ActorDir is an HCL template, evaluated with "actor" bound, naming the
	// directory of an actor partition relative to Dir.
	ActorDir string
	// Accept filters actor partitions. Nil accepts every actor.
	Accept func(actor string) bool
	// Model supplies actor objects for ActorDir.
	Model model.Model
}

// Reconciliation is the plan of one partition.
type Reconciliation struct {
	// Actor is empty for the main partition.
	Actor string                   `json:"actor,omitempty"`
	Dir   string                   `json:"dir"`
	Plan  *reconcile.ReconcilePlan `json:"plan"`
}

type partition struct {
	actor     string
	dir       string
	manifest  string
	artifacts []reconcile.Artifact
}

func (t Target) partitions(ev *expr.Evaluator, result *Result) ([]partition, error) {
	var parts []partition
	for _, actor := range result.Discriminators() {
		if t.Accept != nil && !t.Accept(actor) {
			continue
		}
		dir, err := t.DirFor(ev, actor)
		if err != nil {
			return nil, err
		}
		parts = append(parts, partition{
			actor:     actor,
			dir:       dir,
			manifest:  manifest.NameFor(actor),
			artifacts: result.ByDiscriminator[actor],
		})
	}
	parts = append(parts, partition{
		dir:       t.Dir,
		manifest:  manifest.FileName,
		artifacts: result.Generated,
	})
	return parts, nil
}

// DirFor returns the directory of an actor partition. An empty actor is the main partition.
func (t Target) DirFor(ev *expr.Evaluator, actor string) (string, error) {
	if actor == "" {
		return t.Dir, nil
	}
	pattern := t.ActorDir
	if pattern == "" {
		pattern = DefaultActorDir
	}
	c, err := expr.NewContext().WithGo("actor", model.Actor(t.Model, actor))
	if err != nil {
		return "", err
	}
	rel, err := ev.Template(c, pattern)
	if err != nil {
		return "", &EvaluationError{Template: "actor directory", Expression: pattern, Err: err}
	}
	if err := manifest.ValidatePath(rel); err != nil {
		return "", &EvaluationError{Template: "actor directory", Expression: pattern, Err: err}
	}
	return filepath.Join(t.Dir, filepath.FromSlash(rel)), nil
}

// ToDirectory reconciles every accepted actor partition, in actor order, and then
// the main partition. It stops at the first failing partition; the plans
// reconciled so far are returned with the error.
func ToDirectory(ctx context.Context, ev *expr.Evaluator, result *Result, t Target, opts reconcile.Options) ([]Reconciliation, error) {
	parts, err := t.partitions(ev, result)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var done []Reconciliation
	for _, part := range parts {
		popts := opts
		// each directory gets an ignore matcher rooted at itself
		popts.Ignore = nil
		popts.Logger = log.With(zap.String("actor", part.actor))

		plan, err := reconcile.Reconcile(ctx, part.artifacts, part.dir, part.manifest, popts)
		if plan != nil {
			done = append(done, Reconciliation{Actor: part.actor, Dir: part.dir, Plan: plan})
		}
		if err != nil {
			return done, fmt.Errorf("reconcile %s: %w", part.dir, err)
		}
	}
	return done, nil
}

// PlanDirectory computes the plans ToDirectory would apply without touching the disk.
func PlanDirectory(ctx context.Context, ev *expr.Evaluator, result *Result, t Target, opts reconcile.Options) ([]Reconciliation, error) {
	parts, err := t.partitions(ev, result)
	if err != nil {
		return nil, err
	}

	plans := make([]Reconciliation, 0, len(parts))
	for _, part := range parts {
		popts := opts
		popts.Ignore = nil
		plan, err := reconcile.ReconcileWithPlan(ctx, part.artifacts, part.dir, part.manifest, popts)
		if err != nil {
			return plans, fmt.Errorf("plan %s: %w", part.dir, err)
		}
		plans = append(plans, Reconciliation{Actor: part.actor, Dir: part.dir, Plan: plan})
	}
	return plans, nil
}

// RecalculateDirectory rewrites the manifests of the given actors and of the main
// partition from the files currently on disk.
func RecalculateDirectory(ctx context.Context, ev *expr.Evaluator, actors []string, t Target, opts reconcile.Options) (map[string]manifest.Manifest, error) {
	sorted := slices.Clone(actors)
	slices.Sort(sorted)
	out := make(map[string]manifest.Manifest, len(sorted)+1)
	for _, actor := range sorted {
		if t.Accept != nil && !t.Accept(actor) {
			continue
		}
		dir, err := t.DirFor(ev, actor)
		if err != nil {
			return nil, err
		}
		m, err := reconcile.RecalculateChecksums(ctx, dir, manifest.NameFor(actor), opts)
		if err != nil {
			return nil, err
		}
		out[actor] = m
	}

	m, err := reconcile.RecalculateChecksums(ctx, t.Dir, manifest.FileName, opts)
	if err != nil {
		return nil, err
	}
	out[""] = m
	return out, nil
}
