package cmd

import (
	"encoding/json"
	"os"

	"model-generator/core/output"

	"github.com/spf13/cobra"
)

var planJSON bool

// planCmd shows what generate would do.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the actions generate would take",
	Long:  `Renders the model and compares the result with the target directory and its manifests. Nothing is written. Use --json for the full plans.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		l, svc, err := serviceFor(cfg)
		if err != nil {
			return err
		}
		defer l.Sync()

		run, err := svc.Plan(cmd.Context())
		if err != nil {
			return err
		}

		if planJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		}

		printRun(run)
		conflicts := 0
		for _, r := range run.Reconciliations {
			conflicts += r.Plan.Summary.Conflicts
		}
		if conflicts > 0 && cfg.Generator.ValidateChecksum {
			output.Warn("generate would abort: generated files were edited by hand")
		}
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plans as JSON")
	RootCmd.AddCommand(planCmd)
}
