package generation_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"model-generator/core/database"
	"model-generator/core/generate"
	"model-generator/core/manifest"
	"model-generator/core/reconcile"
	"model-generator/core/storage/mocks"
	"model-generator/feature/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const projectYAML = `
templates:
  - name: entity
    factoryExpression: model.entities
    pathExpression: "${snakeCase(self.name)}.txt"
    template: "entity {{ .self.name }}"
  - name: screen
    actorTypeBased: true
    pathExpression: "screen.txt"
    template: "screen for {{ .actor.name }}"
`

const modelYAML = `
entities:
  - name: OrderLine
  - name: Customer
actors:
  - name: admin
  - name: guest
`

// newProject writes a template root and a model file and returns a config
// targeting a fresh directory.
func newProject(t *testing.T) generate.Config {
	t.Helper()
	dir := t.TempDir()

	roots := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(roots, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(roots, "project.yaml"), []byte(projectYAML), 0o644))

	modelFile := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(modelFile, []byte(modelYAML), 0o644))

	return generate.Config{
		Descriptor:       "project",
		TemplateRoots:    []string{roots},
		TemplateSuffix:   ".tpl",
		TargetDir:        filepath.Join(dir, "out"),
		ModelSource:      "file",
		ModelFile:        modelFile,
		ValidateChecksum: true,
		Workers:          2,
		ActorDir:         generate.DefaultActorDir,
	}
}

func TestServiceApply(t *testing.T) {
	cfg := newProject(t)
	svc := generation.NewService(cfg, generation.Deps{Logger: zap.NewNop()})

	run, err := svc.Apply(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	require.Len(t, run.Reconciliations, 3)
	assert.Equal(t, "admin", run.Reconciliations[0].Actor)
	assert.Equal(t, "guest", run.Reconciliations[1].Actor)
	assert.Equal(t, "", run.Reconciliations[2].Actor)

	data, err := os.ReadFile(filepath.Join(cfg.TargetDir, "order_line.txt"))
	require.NoError(t, err)
	assert.Equal(t, "entity OrderLine", string(data))

	data, err = os.ReadFile(filepath.Join(cfg.TargetDir, "guest", "screen.txt"))
	require.NoError(t, err)
	assert.Equal(t, "screen for guest", string(data))

	assert.FileExists(t, filepath.Join(cfg.TargetDir, manifest.FileName))
	assert.FileExists(t, filepath.Join(cfg.TargetDir, "admin", manifest.NameFor("admin")))

	m, err := svc.Manifest("")
	require.NoError(t, err)
	assert.Equal(t, []string{"customer.txt", "order_line.txt"}, m.Paths())

	m, err = svc.Manifest("admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"screen.txt"}, m.Paths())
}

func TestServicePlanDoesNotWrite(t *testing.T) {
	cfg := newProject(t)
	svc := generation.NewService(cfg, generation.Deps{})

	run, err := svc.Plan(context.Background())
	require.NoError(t, err)
	require.Len(t, run.Reconciliations, 3)

	main := run.Reconciliations[2].Plan
	assert.Equal(t, 2, main.Summary.Writes)
	assert.NoDirExists(t, cfg.TargetDir)
}

func TestServiceConflictAndChecksum(t *testing.T) {
	cfg := newProject(t)
	svc := generation.NewService(cfg, generation.Deps{})
	ctx := context.Background()

	_, err := svc.Apply(ctx)
	require.NoError(t, err)

	edited := filepath.Join(cfg.TargetDir, "customer.txt")
	require.NoError(t, os.WriteFile(edited, []byte("hand edit"), 0o644))

	_, err = svc.Apply(ctx)
	require.Error(t, err)
	var conflict *reconcile.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"customer.txt"}, conflict.Paths)

	manifests, err := svc.Checksum(ctx)
	require.NoError(t, err)
	assert.Contains(t, manifests, "")
	assert.Contains(t, manifests, "admin")

	// the hand edit is accepted as the new baseline and then regenerated
	_, err = svc.Apply(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(edited)
	require.NoError(t, err)
	assert.Equal(t, "entity Customer", string(data))
}

func TestServiceActorsFilter(t *testing.T) {
	cfg := newProject(t)
	cfg.Actors = []string{"guest"}
	svc := generation.NewService(cfg, generation.Deps{})

	run, err := svc.Apply(context.Background())
	require.NoError(t, err)
	require.Len(t, run.Reconciliations, 2)
	assert.Equal(t, "guest", run.Reconciliations[0].Actor)
	assert.NoDirExists(t, filepath.Join(cfg.TargetDir, "admin"))
}

func TestServiceManifestRejectsPaths(t *testing.T) {
	svc := generation.NewService(newProject(t), generation.Deps{})
	for _, actor := range []string{"../x", `a\b`, ".."} {
		_, err := svc.Manifest(actor)
		assert.Error(t, err, actor)
	}
}

func TestServiceManifestMissing(t *testing.T) {
	svc := generation.NewService(newProject(t), generation.Deps{})
	m, err := svc.Manifest("")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestServiceLoadModel(t *testing.T) {
	t.Run("unknown source", func(t *testing.T) {
		cfg := newProject(t)
		cfg.ModelSource = "ldap"
		_, err := generation.NewService(cfg, generation.Deps{}).LoadModel()
		assert.Error(t, err)
	})

	t.Run("database without connection", func(t *testing.T) {
		cfg := newProject(t)
		cfg.ModelSource = "database"
		_, err := generation.NewService(cfg, generation.Deps{}).LoadModel()
		assert.Error(t, err)
	})

	t.Run("database", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL)").Error)

		cfg := newProject(t)
		cfg.ModelSource = "database"
		m, err := generation.NewService(cfg, generation.Deps{DB: db}).LoadModel()
		require.NoError(t, err)

		tables, ok := m["tables"].([]any)
		require.True(t, ok)
		require.Len(t, tables, 1)
		assert.Equal(t, "users", tables[0].(map[string]any)["name"])
	})
}

func TestServiceStorageRoot(t *testing.T) {
	cfg := newProject(t)
	cfg.TemplateRoots = []string{"s3:///templates"}

	t.Run("without client", func(t *testing.T) {
		_, err := generation.NewService(cfg, generation.Deps{}).Plan(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "generator").Return(false, nil)

		_, err := generation.NewService(cfg, generation.Deps{Storage: client, Bucket: "generator"}).Plan(context.Background())
		assert.Error(t, err)
		client.AssertExpectations(t)
	})
}

func TestServiceUnknownHelper(t *testing.T) {
	cfg := newProject(t)
	cfg.Helpers = []string{"nope"}
	_, err := generation.NewService(cfg, generation.Deps{}).Plan(context.Background())
	assert.Error(t, err)
}
