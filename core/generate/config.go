package generate

// Config holds the generator settings of a project.
type Config struct {
	// Descriptor is the descriptor name, read as <name>.yaml from every template root.
	Descriptor string `mapstructure:"descriptor" default:"project"`
	// TemplateRoots lists template root URIs, most specific first
	// (plain paths, file:// or s3://bucket/prefix).
	TemplateRoots []string `mapstructure:"template_roots" default:"templates"`
	// TemplateSuffix marks templates that may be overridden.
	TemplateSuffix string `mapstructure:"template_suffix" default:".tpl"`
	// TargetDir is the directory generated files are reconciled into.
	TargetDir string `mapstructure:"target_dir" default:"generated"`
	// ModelSource selects where the model comes from (file, database).
	ModelSource string `mapstructure:"model_source" default:"file"`
	// ModelFile is the YAML or JSON model when ModelSource is file.
	ModelFile string `mapstructure:"model_file" default:"model.yaml"`
	// ValidateChecksum aborts a run when generated files were edited by hand.
	ValidateChecksum bool `mapstructure:"validate_checksum" default:"true"`
	// TwoPhase checks for edited files before deleting anything.
	TwoPhase bool `mapstructure:"two_phase" default:"false"`
	// DryRun plans without changing the target directory.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// Workers bounds parallelism; zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers" default:"0"`
	// ActorDir is an HCL template naming an actor's directory below TargetDir.
	ActorDir string `mapstructure:"actor_dir" default:"${actor.name}"`
	// Actors restricts which actor partitions are written; empty writes all.
	Actors []string `mapstructure:"actors"`
	// Helpers lists the helper modules made available; empty activates all.
	Helpers []string `mapstructure:"helpers"`
}
