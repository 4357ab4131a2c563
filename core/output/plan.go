package output

import (
	"fmt"

	"model-generator/core/reconcile"
)

// Plan prints the summary of a reconcile plan and, when verbose, every action.
func Plan(label string, plan *reconcile.ReconcilePlan) {
	if plan == nil {
		return
	}
	s := plan.Summary
	Info(fmt.Sprintf("%s: %s (%s)", label, plan.TargetDir, plan.ManifestName))
	Step(fmt.Sprintf("%d writes, %d deletes, %d unchanged, %d ignored", s.Writes, s.Deletes, s.Unchanged, s.Ignored))
	if s.Conflicts > 0 {
		Warn(fmt.Sprintf("%d files were edited since the last run", s.Conflicts))
	}
	for _, a := range plan.Actions {
		msg := fmt.Sprintf("%-8s %s", a.Type, a.Path)
		if a.Reason != "" {
			msg += " (" + a.Reason + ")"
		}
		if a.Type == reconcile.ActionConflict {
			Step(msg)
			continue
		}
		Verbose(msg)
	}
}
