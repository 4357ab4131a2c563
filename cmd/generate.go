package cmd

import (
	"errors"
	"fmt"

	"model-generator/core/output"
	"model-generator/core/reconcile"
	"model-generator/feature/generation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunFlag     bool
	twoPhaseFlag   bool
	noValidateFlag bool
)

// generateCmd renders the model and reconciles the target directory.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate files and reconcile the target directory",
	Long: `Renders every template of the descriptor and reconciles the result into the
target directory. Files that are no longer generated are deleted; files edited
since the last run abort the run unless checksum validation is disabled.

Examples:
  # Generate with the configuration from .env
  model-generator generate

  # Preview without touching the disk
  model-generator generate --dry-run -v

  # Override the template chain
  model-generator generate -r ./custom -r ./templates -t ./out`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Plan only, change nothing")
	generateCmd.Flags().BoolVar(&twoPhaseFlag, "two-phase", false, "Check for edited files before deleting anything")
	generateCmd.Flags().BoolVar(&noValidateFlag, "no-validate", false, "Overwrite hand-edited files")
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g := &cfg.Generator
	if cmd.Flags().Changed("dry-run") {
		g.DryRun = dryRunFlag
	}
	if cmd.Flags().Changed("two-phase") {
		g.TwoPhase = twoPhaseFlag
	}
	if noValidateFlag {
		g.ValidateChecksum = false
	}

	l, svc, err := serviceFor(cfg)
	if err != nil {
		return err
	}
	defer l.Sync()

	run, err := svc.Apply(cmd.Context())
	if run != nil {
		printRun(run)
	}
	if err != nil {
		var conflict *reconcile.ConflictError
		if errors.As(err, &conflict) {
			output.Error(fmt.Sprintf("%d generated files were edited by hand:", len(conflict.Paths)))
			for _, p := range conflict.Paths {
				output.Step(p)
			}
			output.Info("Run 'model-generator checksum' to accept the edits, or --no-validate to overwrite them")
		}
		return err
	}

	if g.DryRun {
		output.Info("Dry-run mode: no changes were made")
		return nil
	}
	l.Debug("Generation finished", zap.String("run_id", run.ID))
	output.Success(fmt.Sprintf("Reconciled %d directories", len(run.Reconciliations)))
	return nil
}

func printRun(run *generation.Run) {
	for _, r := range run.Reconciliations {
		label := "main"
		if r.Actor != "" {
			label = "actor " + r.Actor
		}
		output.Plan(label, r.Plan)
	}
}
