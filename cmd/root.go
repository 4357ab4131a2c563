package cmd

import (
	"fmt"
	"os"

	"model-generator/core/logger"
	"model-generator/core/output"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flags shared by every command. Set flags override the loaded configuration.
var (
	configDir      string
	targetDirFlag  string
	modelFileFlag  string
	descriptorFlag string
	rootsFlag      []string
	actorsFlag     []string
	workersFlag    int
	verboseFlag    bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "model-generator",
	Short: "Model-driven code generator",
	Long: `Model Generator renders a model through a chain of template roots and
reconciles the generated files into a target directory, tracking them in
manifests so that stale files are removed and hand edits are detected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetVerbose(verboseFlag)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps, as for interactive use
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
	flags.StringVarP(&targetDirFlag, "target", "t", "", "Target directory (overrides GENERATOR_TARGET_DIR)")
	flags.StringVarP(&modelFileFlag, "model", "m", "", "Model file (overrides GENERATOR_MODEL_FILE)")
	flags.StringVarP(&descriptorFlag, "descriptor", "d", "", "Descriptor name (overrides GENERATOR_DESCRIPTOR)")
	flags.StringSliceVarP(&rootsFlag, "root", "r", nil, "Template root, most specific first; repeatable (overrides GENERATOR_TEMPLATE_ROOTS)")
	flags.StringSliceVar(&actorsFlag, "actor", nil, "Only write these actor partitions; repeatable")
	flags.IntVar(&workersFlag, "workers", 0, "Parallelism bound (overrides GENERATOR_WORKERS)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Print every planned action")
}
