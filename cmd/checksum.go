package cmd

import (
	"fmt"
	"sort"

	"model-generator/core/manifest"
	"model-generator/core/output"

	"github.com/spf13/cobra"
)

// checksumCmd accepts hand edits by rewriting the manifests.
var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "Recalculate manifest checksums from the files on disk",
	Long: `Rewrites every manifest of the target directory from the current content of
the files it lists. Hand edits become the new baseline and no longer abort
generate; entries whose files were removed are dropped.`,
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

		manifests, err := svc.Checksum(cmd.Context())
		if err != nil {
			return err
		}

		actors := make([]string, 0, len(manifests))
		for actor := range manifests {
			actors = append(actors, actor)
		}
		sort.Strings(actors)
		for _, actor := range actors {
			output.Step(fmt.Sprintf("%s: %d entries", manifest.NameFor(actor), len(manifests[actor])))
		}
		output.Success(fmt.Sprintf("Recalculated %d manifests", len(manifests)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checksumCmd)
}
