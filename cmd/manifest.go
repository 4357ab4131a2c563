package cmd

import (
	"fmt"

	"model-generator/core/manifest"
	"model-generator/core/output"

	"github.com/spf13/cobra"
)

// manifestCmd prints a saved manifest.
var manifestCmd = &cobra.Command{
	Use:   "manifest [actor]",
	Short: "Print the saved manifest of the target directory or of an actor",
	Args:  cobra.MaximumNArgs(1),
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

		actor := ""
		if len(args) == 1 {
			actor = args[0]
		}
		m, err := svc.Manifest(actor)
		if err != nil {
			return err
		}
		if len(m) == 0 {
			output.Warn(fmt.Sprintf("%s is empty or missing", manifest.NameFor(actor)))
			return nil
		}
		output.Info(fmt.Sprintf("%s (%d entries)", manifest.NameFor(actor), len(m)))
		for _, e := range m {
			output.Step(e.String())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(manifestCmd)
}
